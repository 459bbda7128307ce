// Package pricing реализует таблицу стоимости занятий и конвертацию
// суммы для списания. Все функции чистые, без побочных эффектов:
// стоимость пересчитывается на каждый запрос котировки.
package pricing

import (
	"math"
	"strconv"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

// SettlementCurrency — валюта, в которой провайдер всегда проводит списание.
const SettlementCurrency = "INR"

// Ставки за месяц по возрастным диапазонам. Диапазоны закрыты снизу,
// верхний — открытый (старше 15 лет). Возраст младше 3 лет не обслуживается.
const (
	domesticKids   = 17000 // 3–6 лет, INR
	domesticTeens  = 16000 // 7–15 лет, INR
	domesticAdults = 15000 // от 16 лет, INR

	internationalKids   = 230 // 3–6 лет, USD
	internationalTeens  = 215 // 7–15 лет, USD
	internationalAdults = 200 // от 16 лет, USD
)

// FeePerMonth возвращает ставку за один месяц занятий.
// Для возраста вне всех диапазонов возвращает 0 — нулевая ставка
// служит сигналом для блокировки отправки формы, ошибки нет.
func FeePerMonth(residency models.Residency, age int) int {
	if residency == models.ResidencyDomestic {
		switch {
		case age >= 3 && age <= 6:
			return domesticKids
		case age >= 7 && age <= 15:
			return domesticTeens
		case age > 15:
			return domesticAdults
		}
		return 0
	}
	switch {
	case age >= 3 && age <= 6:
		return internationalKids
	case age >= 7 && age <= 15:
		return internationalTeens
	case age > 15:
		return internationalAdults
	}
	return 0
}

// DisplayAmount возвращает сумму к отображению: ставка за месяц,
// умноженная на количество месяцев.
func DisplayAmount(residency models.Residency, age, months int) int {
	return FeePerMonth(residency, age) * months
}

// Currency возвращает валюту отображения для региона.
func Currency(residency models.Residency) string {
	if residency == models.ResidencyDomestic {
		return "INR"
	}
	return "USD"
}

// SettlementSubunits возвращает сумму списания в пайсах.
// Для домашнего региона это displayAmount * 100 без конвертации;
// для международного сумма сначала конвертируется по фиксированному курсу.
func SettlementSubunits(residency models.Residency, displayAmount int, exchangeRate float64) int64 {
	if residency == models.ResidencyDomestic {
		return int64(displayAmount) * 100
	}
	return int64(math.Round(float64(displayAmount) * exchangeRate * 100))
}

// ParseAge разбирает возраст из строки формы. Нечисловой возраст
// трактуется как 0, что даёт нулевую ставку.
func ParseAge(raw string) int {
	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 {
		return 0
	}
	return age
}

// QuoteFor собирает полную котировку для региона, возраста и количества
// месяцев. Количество месяцев по умолчанию равно 1.
func QuoteFor(residency models.Residency, age, months int, exchangeRate float64) models.Quote {
	if months < 1 {
		months = 1
	}
	fee := FeePerMonth(residency, age)
	display := fee * months
	return models.Quote{
		FeePerMonth:        fee,
		DisplayAmount:      display,
		DisplayCurrency:    Currency(residency),
		SettlementSubunits: SettlementSubunits(residency, display, exchangeRate),
		SettlementCurrency: SettlementCurrency,
	}
}
