package history

import (
	"net/http"

	"JarvisGolang/pkg/response"
)

var (
	ErrFetchHistory = response.NewError(http.StatusInternalServerError, "failed to fetch interaction history")
)
