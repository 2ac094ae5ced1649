package storefront

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// SKUParamKey is the parameter carrying the merchant SKU
	SKUParamKey = "arisku"
	// QuantityParamKey is the parameter carrying the quantity to add
	QuantityParamKey = "ariqty"
)

var validate = validator.New()

// ParseActionParams decodes a query-string shaped blob such as
// "arisku=ABC123&ariqty=2". Pairs are split on '&' and then on the first '=';
// when a key repeats the last occurrence wins.
func ParseActionParams(raw string) (ActionParams, error) {
	if strings.TrimSpace(raw) == "" {
		return ActionParams{}, &ParseError{Input: raw, Reason: "empty parameter string"}
	}

	fields := make(map[string]string)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return ActionParams{}, &ParseError{Input: raw, Reason: "bad key encoding: " + err.Error()}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return ActionParams{}, &ParseError{Input: raw, Reason: "bad value encoding: " + err.Error()}
		}
		fields[key] = value
	}

	sku, ok := fields[SKUParamKey]
	if !ok {
		return ActionParams{}, &ParseError{Input: raw, Reason: "missing " + SKUParamKey}
	}
	qtyText, ok := fields[QuantityParamKey]
	if !ok {
		return ActionParams{}, &ParseError{Input: raw, Reason: "missing " + QuantityParamKey}
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyText))
	if err != nil {
		return ActionParams{}, &ParseError{Input: raw, Reason: "quantity is not a number: " + qtyText}
	}

	params := ActionParams{SKU: sku, Quantity: qty}
	if err := validate.Struct(params); err != nil {
		return ActionParams{}, &ParseError{Input: raw, Reason: err.Error()}
	}
	return params, nil
}

// Encode renders the params back into the blob format ParseActionParams reads
func (p ActionParams) Encode() string {
	return SKUParamKey + "=" + url.QueryEscape(p.SKU) + "&" + QuantityParamKey + "=" + strconv.Itoa(p.Quantity)
}
