package systems

// ConsumeFood lets each agent, in the given order, eat the food on its cell.
// Eating removes that one item and raises health by gain, capped at 1.
// Returns the indices of eaten items.
func ConsumeFood(agents []Agent, order []int, food *FoodIndex, gain float64, dst []int) []int {
	dst = dst[:0]
	if food.Len() == 0 {
		return dst
	}
	for _, i := range order {
		a := agents[i]
		f := food.At(a.Pos.X, a.Pos.Y)
		if f == emptyCell {
			continue
		}
		food.Eat(f)
		a.Vitals.Health = min(1, a.Vitals.Health+gain)
		dst = append(dst, f)
	}
	return dst
}
