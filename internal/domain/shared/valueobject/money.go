package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	THB Currency = "THB" // Thai Baht (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	JPY Currency = "JPY" // Japanese Yen
	SGD Currency = "SGD" // Singapore Dollar
	AUD Currency = "AUD" // Australian Dollar
)

// DefaultCurrency is the default currency for the catalog
const DefaultCurrency = THB

type currencyInfo struct {
	symbol    string
	tag       language.Tag
	fractions int
}

// supportedCurrencies is the fixed set of currencies Money accepts,
// with display metadata for Format.
var supportedCurrencies = map[Currency]currencyInfo{
	THB: {symbol: "฿", tag: language.Thai, fractions: 2},
	USD: {symbol: "$", tag: language.AmericanEnglish, fractions: 2},
	EUR: {symbol: "€", tag: language.German, fractions: 2},
	GBP: {symbol: "£", tag: language.BritishEnglish, fractions: 2},
	JPY: {symbol: "¥", tag: language.Japanese, fractions: 0},
	SGD: {symbol: "S$", tag: language.English, fractions: 2},
	AUD: {symbol: "A$", tag: language.English, fractions: 2},
}

// IsSupportedCurrency returns true if the currency is in the supported set
func IsSupportedCurrency(currency Currency) bool {
	_, ok := supportedCurrencies[currency]
	return ok
}

// Money is a value object representing a non-negative monetary amount.
// It is immutable - all operations return new Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency.
// The amount must be non-negative with at most two fractional digits, and
// the currency must be one of the supported set.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !IsSupportedCurrency(currency) {
		return Money{}, fmt.Errorf("unsupported currency: %q", currency)
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("amount cannot be negative: %s", amount)
	}
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return Money{}, fmt.Errorf("amount cannot have more than 2 decimal places: %s", amount)
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyFromFloat creates Money from a float64 value
func NewMoneyFromFloat(amount float64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// MustNewMoney creates Money and panics on error.
// Use only when you are certain the inputs are valid.
func MustNewMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns a new Money with the sum of both amounts.
// Returns error if currencies don't match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns a new Money with the difference.
// Returns error if currencies don't match or the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract money with different currencies: %s and %s", m.currency, other.currency)
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("subtraction would result in negative amount: %s - %s", m.amount, other.amount)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply returns a new Money multiplied by the given factor.
// Returns error if the factor is negative.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, fmt.Errorf("factor cannot be negative: %s", factor)
	}
	return Money{amount: m.amount.Mul(factor).Round(2), currency: m.currency}, nil
}

// Divide returns a new Money divided by the given divisor.
// Returns error if the divisor is zero or negative.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() || divisor.IsNegative() {
		return Money{}, fmt.Errorf("divisor must be positive: %s", divisor)
	}
	return Money{amount: m.amount.Div(divisor).Round(2), currency: m.currency}, nil
}

// Percentage returns p percent of this Money
func (m Money) Percentage(p decimal.Decimal) (Money, error) {
	return m.Multiply(p.Div(decimal.NewFromInt(100)))
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterThan returns true if this Money is greater than the other.
// Returns error if currencies don't match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterThanOrEqual returns true if this Money is greater than or equal to the other
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// LessThan returns true if this Money is less than the other
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	return m.amount.LessThan(other.amount), nil
}

// LessThanOrEqual returns true if this Money is less than or equal to the other
func (m Money) LessThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	return m.amount.LessThanOrEqual(other.amount), nil
}

// String returns a plain string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Format returns a display string with the currency symbol and locale
// grouping, e.g. "฿1,234.50". Currencies without display metadata fall
// back to "amount CODE".
func (m Money) Format() string {
	info, ok := supportedCurrencies[m.currency]
	if !ok || info.symbol == "" {
		return m.String()
	}
	f, _ := m.amount.Float64()
	p := message.NewPrinter(info.tag)
	return p.Sprintf("%s%v", info.symbol, number.Decimal(f,
		number.MinFractionDigits(info.fractions),
		number.MaxFractionDigits(info.fractions),
	))
}

// Min returns the smaller of two Money values.
// Returns error if currencies don't match.
func Min(a, b Money) (Money, error) {
	less, err := a.LessThan(b)
	if err != nil {
		return Money{}, err
	}
	if less {
		return a, nil
	}
	return b, nil
}

// Max returns the larger of two Money values
func Max(a, b Money) (Money, error) {
	greater, err := a.GreaterThan(b)
	if err != nil {
		return Money{}, err
	}
	if greater {
		return a, nil
	}
	return b, nil
}

// Sum adds a series of Money values. All values must share the first
// value's currency. Summing an empty series is an error since the
// result's currency would be undefined.
func Sum(values ...Money) (Money, error) {
	if len(values) == 0 {
		return Money{}, fmt.Errorf("cannot sum an empty series of money values")
	}
	total := values[0]
	var err error
	for _, v := range values[1:] {
		total, err = total.Add(v)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}
