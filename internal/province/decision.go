package province

// DecisionKind phân loại kết quả reduce
type DecisionKind int

const (
	DecisionEmpty DecisionKind = iota
	DecisionUnique
	DecisionTied
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionUnique:
		return "unique"
	case DecisionTied:
		return "tied"
	default:
		return "empty"
	}
}

// Decision is the outcome of reducing a ScoreMap to its maximum. A tie keeps
// every code at the maximum so that callers have to escalate.
type Decision struct {
	Kind  DecisionKind `json:"kind"`
	Codes []Code       `json:"codes"`
	Score int          `json:"score"`
}

// Winner trả về mã duy nhất nếu decision là unique
func (d Decision) Winner() (Code, bool) {
	if d.Kind != DecisionUnique {
		return "", false
	}
	return d.Codes[0], true
}

// Reduce collects every code that reaches the maximum score. Codes keep the
// order of the ScoreMap.
func Reduce(scores ScoreMap) Decision {
	if len(scores) == 0 {
		return Decision{Kind: DecisionEmpty}
	}

	best := scores[0].Score
	for _, rs := range scores[1:] {
		if rs.Score > best {
			best = rs.Score
		}
	}

	var codes []Code
	for _, rs := range scores {
		if rs.Score == best {
			codes = append(codes, rs.Code)
		}
	}

	kind := DecisionUnique
	if len(codes) > 1 {
		kind = DecisionTied
	}
	return Decision{Kind: kind, Codes: codes, Score: best}
}
