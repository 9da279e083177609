package analytics

import (
	"time"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func tx(when time.Time, item string, cat model.Category, amount float64) model.Transaction {
	return model.Transaction{Date: when, Item: item, Type: "Game Pass", Category: cat, Amount: amount}
}

func sampleSet() []model.Transaction {
	return []model.Transaction{
		tx(date(2024, 3, 10), "VIP", model.CategoryGame, 100),
		tx(date(2024, 3, 12), "Blue Shirt", model.CategoryCosmetics, 50),
		tx(date(2024, 2, 1), "Trade", model.CategoryTrading, 25),
		tx(date(2024, 1, 20), "VIP", model.CategoryGame, 100),
		tx(date(2024, 3, 15), "Bundle", model.CategoryOther, 25),
	}
}
