package mock

import (
	"fmt"
	"time"

	"nexus/internal/model"
)

// DefaultTransactionCount 默认返回的订单数
const DefaultTransactionCount = 10

var (
	customerNames  = []string{"Alice Smith", "Bob Johnson", "Charlie Davis", "Diana Evans", "Ethan Hunt"}
	statusOptions  = []string{"Completed", "Processing", "Shipped"}
	transactionFmt = "2006-01-02 15:04"
)

// Transactions 生成 count 条最近 24 小时内的模拟订单
func Transactions(rnd Rand, count int, now time.Time) []model.Transaction {
	if count < 0 {
		count = 0
	}
	out := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		placed := now.Add(-time.Duration(randInt(rnd, 1, 1440)) * time.Minute)
		out = append(out, model.Transaction{
			ID:       fmt.Sprintf("ORD-%d", randInt(rnd, 1000, 9999)),
			Customer: choice(rnd, customerNames),
			Amount:   randInt(rnd, 20, 500),
			Status:   choice(rnd, statusOptions),
			Date:     placed.Format(transactionFmt),
		})
	}
	return out
}
