package history

import "JarvisGolang/internal/entity"

type HistoryResponse struct {
	Interactions []entity.Interaction `json:"interactions"`
	Count        int                  `json:"count"`
}
