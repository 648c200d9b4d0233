package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devinsights/internal/cache"
	"devinsights/internal/middleware"
	"devinsights/internal/models"
	"devinsights/internal/store"
)

// Blog groups the public read handlers. Anonymous responses for the
// listing endpoints are served from the Valkey response cache when
// available; authenticated responses carry per-user fields and always
// hit the database.
type Blog struct {
	categories *store.CategoryStore
	posts      *store.PostStore
	respCache  *cache.ResponseCache
}

// NewBlog creates the public blog handler group. respCache may be nil when
// Valkey is not configured.
func NewBlog(categories *store.CategoryStore, posts *store.PostStore, respCache *cache.ResponseCache) *Blog {
	return &Blog{categories: categories, posts: posts, respCache: respCache}
}

// userInfo is the authentication summary attached to category listings.
type userInfo struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	DisplayName     string `json:"displayName"`
}

func userInfoFor(id middleware.Identity) userInfo {
	if !id.Authenticated {
		return userInfo{IsAuthenticated: false, DisplayName: "Anonymous"}
	}
	return userInfo{IsAuthenticated: true, DisplayName: id.Principal.DisplayName()}
}

// Categories handles GET /api/categories.
func (b *Blog) Categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if body, ok := b.respCache.Get(ctx, cache.CategoriesKey()); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	names, err := b.categories.ListNames()
	if err != nil {
		serverError(w, "listing categories failed", err)
		return
	}

	body := map[string]any{
		"categories": names,
		"timestamp":  timestamp(),
	}
	b.respCache.Set(ctx, cache.CategoriesKey(), mustMarshal(body))
	writeJSON(w, http.StatusOK, body)
}

// PostsByCategory handles GET /api/posts/{category}. The lookup is
// case-insensitive; an unknown category yields a 404 carrying the full
// list of valid category names.
func (b *Blog) PostsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")
	identity := middleware.IdentityFromCtx(ctx)

	// Only anonymous responses are cacheable: authenticated ones embed
	// the caller's display name.
	cacheable := !identity.Authenticated
	if cacheable {
		if body, ok := b.respCache.Get(ctx, cache.PostsKey(category)); ok {
			writeRawJSON(w, http.StatusOK, body)
			return
		}
	}

	listing, err := b.posts.ListByCategory(category)
	if err != nil {
		var notFound *store.CategoryNotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":               "Category not found",
				"availableCategories": notFound.Available,
				"timestamp":           timestamp(),
			})
			return
		}
		serverError(w, "listing posts failed", err)
		return
	}

	response := struct {
		*models.CategoryPosts
		Timestamp string   `json:"timestamp"`
		UserInfo  userInfo `json:"userInfo"`
	}{
		CategoryPosts: listing,
		Timestamp:     timestamp(),
		UserInfo:      userInfoFor(identity),
	}

	if cacheable {
		b.respCache.Set(ctx, cache.PostsKey(category), mustMarshal(response))
	}
	writeJSON(w, http.StatusOK, response)
}

// PostBySlug handles GET /api/post/{id}. The external post id is the slug.
func (b *Blog) PostBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "id")
	identity := middleware.IdentityFromCtx(ctx)

	cacheable := !identity.Authenticated
	if cacheable {
		if body, ok := b.respCache.Get(ctx, cache.PostKey(slug)); ok {
			writeRawJSON(w, http.StatusOK, body)
			return
		}
	}

	post, err := b.posts.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":     "Post not found",
				"timestamp": timestamp(),
			})
			return
		}
		serverError(w, "finding post failed", err)
		return
	}

	response := struct {
		*models.PostDetail
		UserCanComment bool   `json:"userCanComment"`
		Timestamp      string `json:"timestamp"`
	}{
		PostDetail:     post,
		UserCanComment: identity.Authenticated,
		Timestamp:      timestamp(),
	}

	if cacheable {
		b.respCache.Set(ctx, cache.PostKey(slug), mustMarshal(response))
	}
	writeJSON(w, http.StatusOK, response)
}
