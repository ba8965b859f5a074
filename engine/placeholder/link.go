package placeholder

import (
	"fmt"
	"strings"

	"github.com/stepwire/stepwire/engine/core"
	"github.com/stepwire/stepwire/pkg/rest"
)

// invalidTaskDisplay is rendered when a link is requested for a task id that
// cannot exist.
const invalidTaskDisplay = "#invalid-task"

// GenerateTaskLink renders the anchor markup pointing at a task. Without a
// host URL only the display text is returned so templates still read
// naturally in plain-text channels.
func GenerateTaskLink(hostURL string, taskID int64) string {
	if hostURL == "" {
		return fmt.Sprintf("#%d", taskID)
	}
	if !core.IsPositiveID(taskID) {
		return invalidTaskDisplay
	}
	url, ok := GenerateTaskURL(hostURL, taskID)
	if !ok {
		return fmt.Sprintf("#%d", taskID)
	}
	return fmt.Sprintf(`<a href="%s">#%d</a>`, url, taskID)
}

// GenerateTaskURL builds the absolute URL of a task. Absent for a blank host
// or a non-positive task id. A single trailing slash on the host is stripped
// so the join never doubles the path separator.
func GenerateTaskURL(hostURL string, taskID int64) (string, bool) {
	if strings.TrimSpace(hostURL) == "" || !core.IsPositiveID(taskID) {
		return "", false
	}
	base := strings.TrimSuffix(hostURL, "/")
	return fmt.Sprintf("%s%s?%s=%d", base, rest.PathTasks, rest.ParamTaskID, taskID), true
}
