package recipient

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ValidateField checks that field is present on node and that its value
// satisfies pred. The label is the name used in the error text.
func ValidateField(node gjson.Result, field string, pred func(gjson.Result) bool, label string) error {
	value := node.Get(field)
	if !value.Exists() {
		return errors.Errorf("%s is missing", label)
	}
	if !pred(value) {
		return errors.Errorf("%s has an invalid type", label)
	}
	return nil
}

// ValidateMembershipsArray checks that node is an array of non-empty strings.
// An empty array is valid.
func ValidateMembershipsArray(node gjson.Result) error {
	if !node.Exists() || !node.IsArray() {
		return errors.New("memberShips must be an array")
	}
	for _, elem := range node.Array() {
		if elem.Type != gjson.String || strings.TrimSpace(elem.String()) == "" {
			return errors.New("membership reference must be a non-empty string")
		}
	}
	return nil
}
