package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/minhtran/feedgram/internal/application/usecase/search"
	"github.com/minhtran/feedgram/internal/domain/search"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
}

func NewSearchHandler(uc *searchUC.SearchUseCase) *SearchHandler {
	return &SearchHandler{searchUseCase: uc}
}

// searchInput binds the shared query surface of both search endpoints.
// Malformed page/pageSize is a caller mistake and yields a 400, distinct
// from "no results". An empty query is not an error.
func searchInput(c *gin.Context) (searchUC.SearchInput, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return searchUC.SearchInput{}, err
	}
	pageSize, err := intQuery(c, "pageSize", 20)
	if err != nil {
		return searchUC.SearchInput{}, err
	}
	authorIDs, err := idsQuery(c, "authorIds")
	if err != nil {
		return searchUC.SearchInput{}, err
	}
	followOnly, err := boolQuery(c, "followOnly")
	if err != nil {
		return searchUC.SearchInput{}, err
	}

	return searchUC.SearchInput{
		Query: c.Query("query"),
		Filters: search.Filters{
			AuthorIDs:  authorIDs,
			FollowOnly: followOnly,
			ViewerID:   ViewerPtr(c),
		},
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (h *SearchHandler) SearchUsers(c *gin.Context) {
	input, err := searchInput(c)
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.searchUseCase.SearchUsers(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserSearchResponse(output))
}

func (h *SearchHandler) SearchPosts(c *gin.Context) {
	input, err := searchInput(c)
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.searchUseCase.SearchPosts(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPostSearchResponse(output))
}
