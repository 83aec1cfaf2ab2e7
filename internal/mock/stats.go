package mock

import (
	"math"

	"nexus/internal/model"
)

// Snapshot 生成一份汇总指标
func Snapshot(rnd Rand) model.Stats {
	rate := uniform(rnd, 2.8, 4.5)
	return model.Stats{
		TotalRevenue:   154320 + randInt(rnd, 0, 5000),
		ActiveUsers:    1205 + randInt(rnd, 0, 50),
		ConversionRate: math.Round(rate*10) / 10,
		TopCategory:    "Electronics",
	}
}
