package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// rawObject keeps every member of a JSON object so members the service does not
// interpret are written back unchanged.
type rawObject map[string]json.RawMessage

func decodeObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("expected a JSON object, got null")
	}
	return obj, nil
}

func (o rawObject) clone(extra int) rawObject {
	out := make(rawObject, len(o)+extra)
	for k, v := range o {
		out[k] = v
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Batch is the request envelope: the product list under 'data' plus any other
// top-level members the caller sent.
type Batch struct {
	Products []Product
	envelope rawObject
}

// Product is a catalog product owned by a company. ID and CompanyID are read as text
// whatever their JSON type; only Variants is ever rewritten.
type Product struct {
	ID        string
	CompanyID string
	Variants  []Variant
	fields    rawObject
}

// Variant is a purchasable variation of a product
type Variant struct {
	Options []Option
	fields  rawObject
}

// Option is a name/value pair on a variant. Value holds the vendor token before
// mapping and the canonical token after.
type Option struct {
	Name   string
	Value  string
	fields rawObject
	// decoded value as read; while Value still equals it the raw bytes are written back
	original string
}

// ParseBatch validates a raw request body and decodes it into a Batch.
// A body that is not JSON yields ErrMalformedBody; a body without a 'data' array,
// or whose products do not have the expected shape, yields ErrInvalidBatch.
func ParseBatch(body []byte) (*Batch, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, syntaxError(body))
	}

	envelope, err := decodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}

	// 'data' is the envelope member, so the last of duplicate keys wins
	raw, ok := envelope["data"]
	if !ok {
		return nil, ErrInvalidBatch
	}
	data := gjson.ParseBytes(raw)
	if !data.IsArray() {
		return nil, ErrInvalidBatch
	}

	products := make([]Product, 0, len(data.Array()))
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}

	return &Batch{Products: products, envelope: envelope}, nil
}

// syntaxError recovers a descriptive parse error for a body gjson rejected
func syntaxError(body []byte) error {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON")
}

// MarshalJSON writes the envelope back with 'data' replaced by the current products
func (b Batch) MarshalJSON() ([]byte, error) {
	products := b.Products
	if products == nil {
		products = []Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}

	out := b.envelope.clone(1)
	out["data"] = data
	return json.Marshal(out)
}

// OptionCount returns the number of options across all variants of the product
func (p *Product) OptionCount() int {
	n := 0
	for _, v := range p.Variants {
		n += len(v.Options)
	}
	return n
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Product) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("product: %w", err)
	}

	p.ID = gjson.ParseBytes(obj["id"]).String()
	p.CompanyID = gjson.ParseBytes(obj["companyId"]).String()
	p.Variants = nil
	if raw, ok := obj["variants"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &p.Variants); err != nil {
			return fmt.Errorf("product %q variants: %w", p.ID, err)
		}
	}
	p.fields = obj
	return nil
}

// MarshalJSON implements json.Marshaler
func (p Product) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return json.Marshal(map[string]interface{}{
			"id":        p.ID,
			"companyId": p.CompanyID,
			"variants":  nonNilVariants(p.Variants),
		})
	}

	out := p.fields.clone(0)
	if p.Variants != nil {
		variants, err := json.Marshal(p.Variants)
		if err != nil {
			return nil, err
		}
		out["variants"] = variants
	}
	return json.Marshal(out)
}

func nonNilVariants(v []Variant) []Variant {
	if v == nil {
		return []Variant{}
	}
	return v
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Variant) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("variant: %w", err)
	}

	v.Options = nil
	if raw, ok := obj["options"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &v.Options); err != nil {
			return fmt.Errorf("variant options: %w", err)
		}
	}
	v.fields = obj
	return nil
}

// MarshalJSON implements json.Marshaler
func (v Variant) MarshalJSON() ([]byte, error) {
	if v.fields == nil {
		options := v.Options
		if options == nil {
			options = []Option{}
		}
		return json.Marshal(map[string]interface{}{"options": options})
	}

	out := v.fields.clone(0)
	if v.Options != nil {
		options, err := json.Marshal(v.Options)
		if err != nil {
			return nil, err
		}
		out["options"] = options
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The value must be a JSON string since it
// is compared against and replaced by mapping tokens.
func (o *Option) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("option: %w", err)
	}

	value := gjson.ParseBytes(obj["value"])
	if value.Type != gjson.String {
		return fmt.Errorf("option value must be a string, got %s", value.Type)
	}

	o.Name = gjson.ParseBytes(obj["name"]).String()
	o.Value = value.String()
	o.original = o.Value
	o.fields = obj
	return nil
}

// MarshalJSON implements json.Marshaler. An unchanged value is written back with its
// original bytes so escapes that do not survive decoding are kept.
func (o Option) MarshalJSON() ([]byte, error) {
	if o.fields != nil && o.Value == o.original {
		return json.Marshal(o.fields)
	}

	value, err := json.Marshal(o.Value)
	if err != nil {
		return nil, err
	}

	if o.fields == nil {
		name, err := json.Marshal(o.Name)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rawObject{"name": name, "value": value})
	}

	out := o.fields.clone(0)
	out["value"] = value
	return json.Marshal(out)
}
