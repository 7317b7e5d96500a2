package elasticpath

import (
	"fmt"
	"strings"
)

// Condition is a single clause of a catalog filter expression
type Condition interface {
	Expression() string
}

type eqCondition struct {
	field string
	value string
}

// Eq matches records whose field equals value.
// Example: Eq("enabled", "true") renders "eq(enabled,true)"
func Eq(field, value string) Condition {
	return eqCondition{field: field, value: value}
}

func (c eqCondition) Expression() string {
	return fmt.Sprintf("eq(%s,%s)", c.field, c.value)
}

type inCondition struct {
	field  string
	values []string
}

// In matches records whose field is one of values.
// Example: In("vendor_option", "s", "m") renders "in(vendor_option,s,m)"
func In(field string, values ...string) Condition {
	return inCondition{field: field, values: values}
}

func (c inCondition) Expression() string {
	return fmt.Sprintf("in(%s,%s)", c.field, strings.Join(c.values, ","))
}

// Filter joins conditions with ':' which the catalog API treats as AND
func Filter(conditions ...Condition) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		parts = append(parts, c.Expression())
	}
	return strings.Join(parts, ":")
}
