package domain

type UnitKind string

const (
	UnitPiece  UnitKind = "piece"
	UnitWeight UnitKind = "weight"
)

// DefaultPackageWeightGrams is assumed for weight-sold items whose cart line
// carries no explicit package weight.
const DefaultPackageWeightGrams = 250

type CartLine struct {
	ProductID     int      `json:"id"`
	Name          string   `json:"name"`
	Unit          UnitKind `json:"unit"`
	Price         int64    `json:"price"`
	Quantity      int      `json:"quantity"`
	PackageWeight int      `json:"packageWeight,omitempty"`
}

// WeightGrams returns the total weight this line contributes to the
// minimum-order check. Piece-sold lines contribute nothing.
func (l CartLine) WeightGrams() int {
	if l.Unit != UnitWeight {
		return 0
	}
	w := l.PackageWeight
	if w == 0 {
		w = DefaultPackageWeightGrams
	}
	return l.Quantity * w
}

func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

func CartWeightGrams(cart []CartLine) int {
	total := 0
	for _, l := range cart {
		total += l.WeightGrams()
	}
	return total
}

func CartSubtotal(cart []CartLine) int64 {
	var total int64
	for _, l := range cart {
		total += l.LineTotal()
	}
	return total
}

func CartItemCount(cart []CartLine) int {
	count := 0
	for _, l := range cart {
		count += l.Quantity
	}
	return count
}
