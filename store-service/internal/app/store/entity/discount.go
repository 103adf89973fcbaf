package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// DiscountKind - вид скидки: без скидки, фиксированная сумма или процент
type DiscountKind int

const (
	DiscountNone DiscountKind = iota
	DiscountFlat
	DiscountPercentage
)

// String возвращает имя вида скидки, как в JSON
func (k DiscountKind) String() string {
	switch k {
	case DiscountNone:
		return "none"
	case DiscountFlat:
		return "flat"
	case DiscountPercentage:
		return "percentage"
	}
	return fmt.Sprintf("DiscountKind(%d)", int(k))
}

// ParseDiscountKind разбирает строковое представление вида скидки
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return DiscountNone, nil
	case "flat":
		return DiscountFlat, nil
	case "percentage":
		return DiscountPercentage, nil
	}
	return DiscountNone, fmt.Errorf("%w: unknown kind %q", ErrInvalidDiscount, s)
}

// MarshalJSON пишет вид скидки строкой
func (k DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON принимает строковое имя вида скидки
func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDiscountKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Discount - неизменяемое правило ценообразования
// Value для Flat - сумма в валюте, для Percentage - процент (диапазон не проверяется)
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// NoDiscount - цена без изменений
func NoDiscount() Discount {
	return Discount{Kind: DiscountNone}
}

// FlatDiscount - фиксированная сумма, вычитаемая из цены
func FlatDiscount(amount float64) Discount {
	return Discount{Kind: DiscountFlat, Value: amount}
}

// PercentageDiscount - процент от цены
func PercentageDiscount(percent float64) Discount {
	return Discount{Kind: DiscountPercentage, Value: percent}
}

// Validate проверяет, что вид скидки известен, а значение - конечное число
func (d Discount) Validate() error {
	switch d.Kind {
	case DiscountNone, DiscountFlat, DiscountPercentage:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDiscount, d.Kind)
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return fmt.Errorf("%w: value %v is not a finite number", ErrInvalidDiscount, d.Value)
	}
	return nil
}

// Apply применяет скидку к базовой цене. Итоговая цена никогда не уходит ниже нуля
func (d Discount) Apply(basePrice float64) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	switch d.Kind {
	case DiscountNone:
		return basePrice, nil
	case DiscountFlat:
		return math.Max(0, basePrice-d.Value), nil
	case DiscountPercentage:
		return math.Max(0, basePrice*(1-d.Value/100)), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidDiscount, d.Kind)
}
