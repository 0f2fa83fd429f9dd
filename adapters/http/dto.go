package http

import (
	searchUC "github.com/minhtran/feedgram/internal/application/usecase/search"
	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/internal/domain/user"
)

// Auth DTOs

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	UserName   *string `json:"userName"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
	BannerPic  *string `json:"bannerPic"`
}

// Post DTOs

type createPostRequest struct {
	Picture string `json:"picture"`
	Content string `json:"content"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// Search DTOs. A search item is the entity's usual fields plus the match
// breakdown that drove its rank.

type userSearchItemDTO struct {
	*user.User
	Match search.Match `json:"match"`
}

type postSearchItemDTO struct {
	*post.Post
	Match search.Match `json:"match"`
}

type searchResponseDTO struct {
	Items    any    `json:"items"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
	Query    string `json:"query"`
}

func toUserSearchResponse(out *searchUC.SearchUsersOutput) searchResponseDTO {
	items := make([]userSearchItemDTO, len(out.Items))
	for i, hit := range out.Items {
		items[i] = userSearchItemDTO{User: hit.User, Match: hit.Match}
	}
	return searchResponseDTO{
		Items:    items,
		Page:     out.Page,
		PageSize: out.PageSize,
		Total:    out.Total,
		Query:    out.Query,
	}
}

func toPostSearchResponse(out *searchUC.SearchPostsOutput) searchResponseDTO {
	items := make([]postSearchItemDTO, len(out.Items))
	for i, hit := range out.Items {
		items[i] = postSearchItemDTO{Post: hit.Post, Match: hit.Match}
	}
	return searchResponseDTO{
		Items:    items,
		Page:     out.Page,
		PageSize: out.PageSize,
		Total:    out.Total,
		Query:    out.Query,
	}
}
