package delivery

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Kazeku-06/lv-backend/internal/domain"
	"github.com/Kazeku-06/lv-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// payload is a decoded JSON object body that remembers which keys the
// client sent. Values of the wrong JSON type are collected as field errors.
type payload struct {
	raw      map[string]json.RawMessage
	supplied []string
	errs     *domain.ValidationError
}

func bindPayload(c *gin.Context) (*payload, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	p := &payload{raw: map[string]json.RawMessage{}, supplied: []string{}, errs: domain.NewValidationError()}
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p.raw); err != nil {
		verr := domain.NewValidationError()
		verr.Add("body", "The request body must be a valid JSON object.")
		return nil, verr
	}
	if p.raw == nil {
		p.raw = map[string]json.RawMessage{}
	}
	return p, nil
}

// lookup reports the raw value under key and marks field as supplied.
// A JSON null comes back as ok with a nil value.
func (p *payload) lookup(key, field string) (json.RawMessage, bool) {
	v, ok := p.raw[key]
	if !ok {
		return nil, false
	}
	p.supplied = append(p.supplied, field)
	if string(bytes.TrimSpace(v)) == "null" {
		return nil, true
	}
	return v, true
}

// String trims the value; blank strings count as null.
func (p *payload) String(key, field string) *string {
	v, ok := p.lookup(key, field)
	if !ok || v == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		p.errs.Add(key, "The "+usecase.Attribute(key)+" field must be a string.")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Decimal accepts a JSON number or a numeric string.
func (p *payload) Decimal(key, field string) *decimal.Decimal {
	v, ok := p.lookup(key, field)
	if !ok || v == nil {
		return nil
	}
	text, blank, ok := scalarText(v)
	if blank {
		return nil
	}
	d, err := decimal.NewFromString(text)
	if !ok || err != nil {
		p.errs.Add(key, "The "+usecase.Attribute(key)+" field must be a number.")
		return nil
	}
	return &d
}

// ID accepts an integer as a JSON number or string. Anything else cannot
// name a stored row.
func (p *payload) ID(key, field string) *int64 {
	v, ok := p.lookup(key, field)
	if !ok || v == nil {
		return nil
	}
	text, blank, ok := scalarText(v)
	if blank {
		return nil
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if !ok || err != nil {
		p.errs.Add(key, usecase.InvalidSelectionMessage(key))
		return nil
	}
	return &id
}

func (p *payload) Err() error {
	if p.errs.Empty() {
		return nil
	}
	return p.errs
}

// scalarText returns the text of a JSON number or string. ok is false for
// any other JSON type.
func scalarText(v json.RawMessage) (text string, blank bool, ok bool) {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false, false
		}
		s = strings.TrimSpace(s)
		return s, s == "", true
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", false, false
	}
	return n.String(), false, true
}

func categoryInput(p *payload) *domain.CategoryInput {
	input := &domain.CategoryInput{
		Name:        p.String("name", "Name"),
		Description: p.String("description", "Description"),
	}
	input.Supplied = p.supplied
	return input
}

func productInput(p *payload) *domain.ProductInput {
	input := &domain.ProductInput{
		Name:       p.String("name", "Name"),
		Price:      p.Decimal("price", "Price"),
		CategoryID: p.ID("category_id", "CategoryID"),
	}
	input.Supplied = p.supplied
	return input
}
