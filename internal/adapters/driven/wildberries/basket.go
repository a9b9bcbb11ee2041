package wildberries

import "fmt"

// Volume thresholds for storage shard resolution.
const (
	// lastRangedVol is the highest volume covered by the range table.
	lastRangedVol = 3917

	// firstProbedBasket is tried first for volumes past the table,
	// and is the fallback for volumes inside it with no range.
	firstProbedBasket = 23
)

// volRange maps a closed volume interval to a basket number.
type volRange struct {
	from, to int64
	basket   int
}

var volRanges = []volRange{
	{0, 143, 1}, {144, 287, 2}, {288, 431, 3},
	{432, 719, 4}, {720, 1007, 5}, {1008, 1061, 6},
	{1062, 1115, 7}, {1116, 1169, 8}, {1170, 1313, 9},
	{1314, 1601, 10}, {1602, 1655, 11}, {1656, 1919, 12},
	{1920, 2045, 13}, {2046, 2189, 14}, {2190, 2405, 15},
	{2406, 2621, 16}, {2622, 2837, 17}, {2838, 3053, 18},
	{3054, 3269, 19}, {3270, 3485, 20}, {3486, 3701, 21},
	{3702, 3917, 22},
}

// BasketName formats a basket number as a shard host label.
func BasketName(n int) string {
	return fmt.Sprintf("basket-%02d", n)
}

// basketCandidates returns the shards to try for vol, in order.
// Volumes covered by the table have exactly one candidate.
func basketCandidates(vol int64, maxBasket int) []string {
	if vol <= lastRangedVol {
		for _, r := range volRanges {
			if vol >= r.from && vol <= r.to {
				return []string{BasketName(r.basket)}
			}
		}
		return []string{BasketName(firstProbedBasket)}
	}

	if maxBasket < firstProbedBasket {
		maxBasket = firstProbedBasket
	}
	candidates := make([]string, 0, maxBasket-firstProbedBasket+1)
	for n := firstProbedBasket; n <= maxBasket; n++ {
		candidates = append(candidates, BasketName(n))
	}
	return candidates
}
