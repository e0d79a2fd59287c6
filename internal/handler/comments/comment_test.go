package comments

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/database"
	"storefront/internal/handler/handlertest"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/stretchr/testify/require"
)

func restore() {
	getProductByID = store.GetProductByID
	createComment = store.CreateComment
	listApprovedComments = store.ListApprovedComments
	listComments = store.ListComments
	approveComment = store.ApproveComment
	deleteComment = store.DeleteComment
}

func stubProducts() {
	getProductByID = func(ctx context.Context, db database.DB, id int) (*model.Product, error) {
		switch id {
		case 3:
			return &model.Product{ID: 3, Name: "Oak table", IsActive: true}, nil
		case 4:
			return &model.Product{ID: 4, Name: "Retired lamp"}, nil
		}
		return nil, fmt.Errorf("GetProductByID: %w", store.ErrNotFound)
	}
}

func TestCreateCommentHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	stubProducts()

	var saved *model.Comment
	createComment = func(ctx context.Context, db database.DB, c *model.Comment) (*model.Comment, error) {
		saved = c
		c.ID = 50
		return c, nil
	}

	t.Run("guest without identity", func(t *testing.T) {
		c, rec := handlertest.JSON(e, http.MethodPost, "/", map[string]any{"content": "nice"})
		handlertest.WithParams(c, "productId", "3")
		require.NoError(t, CreateCommentHandler(&database.FakeDB{}, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Name and email are required for non-registered users", handlertest.Message(rec))
	})

	t.Run("guest", func(t *testing.T) {
		notifier := &handlertest.FakeNotifier{}
		c, rec := handlertest.JSON(e, http.MethodPost, "/", map[string]any{
			"commenterName": "Guest", "email": "Guest@Example.com", "content": " nice ", "rating": 4,
		})
		handlertest.WithParams(c, "productId", "3")
		require.NoError(t, CreateCommentHandler(&database.FakeDB{}, notifier)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Nil(t, saved.UserID)
		require.Equal(t, "guest@example.com", saved.Email)
		require.Equal(t, "nice", saved.Content)
		require.Equal(t, 4, *saved.Rating)
		require.False(t, saved.IsApproved)

		require.Len(t, notifier.Sent, 1)
		require.Equal(t, model.NotificationComment, notifier.Sent[0].Type)
	})

	t.Run("registered user identity wins", func(t *testing.T) {
		c, rec := handlertest.JSON(e, http.MethodPost, "/", map[string]any{
			"commenterName": "Someone Else", "content": "great",
		})
		handlertest.AsUser(handlertest.WithParams(c, "productId", "3"), handlertest.Member())
		require.NoError(t, CreateCommentHandler(&database.FakeDB{}, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, 2, *saved.UserID)
		require.Equal(t, "Mia Member", saved.CommenterName)
		require.Equal(t, "mia@example.com", saved.Email)
	})

	t.Run("rating out of range", func(t *testing.T) {
		c, rec := handlertest.JSON(e, http.MethodPost, "/", map[string]any{"content": "meh", "rating": 6})
		handlertest.AsUser(handlertest.WithParams(c, "productId", "3"), handlertest.Member())
		require.NoError(t, CreateCommentHandler(&database.FakeDB{}, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "rating must be at most 5", handlertest.Message(rec))
	})

	for _, id := range []string{"4", "99"} {
		t.Run("missing product "+id, func(t *testing.T) {
			c, rec := handlertest.JSON(e, http.MethodPost, "/", map[string]any{"content": "hello"})
			handlertest.AsUser(handlertest.WithParams(c, "productId", id), handlertest.Member())
			require.NoError(t, CreateCommentHandler(&database.FakeDB{}, &handlertest.FakeNotifier{})(c))
			require.Equal(t, http.StatusNotFound, rec.Code)
			require.Equal(t, "Product not found", handlertest.Message(rec))
		})
	}

	t.Run("product removed before insert", func(t *testing.T) {
		createComment = func(ctx context.Context, db database.DB, c *model.Comment) (*model.Comment, error) {
			return nil, fmt.Errorf("CreateComment: %w", store.ErrInvalidReference)
		}
		notifier := &handlertest.FakeNotifier{}
		c, rec := handlertest.JSON(e, http.MethodPost, "/", map[string]any{"content": "hello"})
		handlertest.AsUser(handlertest.WithParams(c, "productId", "3"), handlertest.Member())
		require.NoError(t, CreateCommentHandler(&database.FakeDB{}, notifier)(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Product not found", handlertest.Message(rec))
		require.Empty(t, notifier.Sent)
	})
}

func TestListProductCommentsHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	listApprovedComments = func(ctx context.Context, db database.DB, productID int) ([]model.Comment, error) {
		if productID == 3 {
			return []model.Comment{{ID: 1, ProductID: 3, IsApproved: true}}, nil
		}
		return nil, nil
	}

	c, rec := handlertest.JSON(e, http.MethodGet, "/", nil)
	handlertest.WithParams(c, "productId", "3")
	require.NoError(t, ListProductCommentsHandler(&database.FakeDB{})(c))
	require.Contains(t, rec.Body.String(), `"isApproved":true`)

	c, rec = handlertest.JSON(e, http.MethodGet, "/", nil)
	handlertest.WithParams(c, "productId", "8")
	require.NoError(t, ListProductCommentsHandler(&database.FakeDB{})(c))
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestListAllCommentsHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	var got *bool
	listComments = func(ctx context.Context, db database.DB, approved *bool) ([]model.Comment, error) {
		got = approved
		return nil, nil
	}

	c, _ := handlertest.JSON(e, http.MethodGet, "/?status=pending", nil)
	require.NoError(t, ListAllCommentsHandler(&database.FakeDB{})(c))
	require.NotNil(t, got)
	require.False(t, *got)

	c, _ = handlertest.JSON(e, http.MethodGet, "/?status=approved", nil)
	require.NoError(t, ListAllCommentsHandler(&database.FakeDB{})(c))
	require.True(t, *got)

	c, _ = handlertest.JSON(e, http.MethodGet, "/", nil)
	require.NoError(t, ListAllCommentsHandler(&database.FakeDB{})(c))
	require.Nil(t, got)

	c, rec := handlertest.JSON(e, http.MethodGet, "/?status=spam", nil)
	require.NoError(t, ListAllCommentsHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModerateComment(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	approveComment = func(ctx context.Context, db database.DB, id int) (*model.Comment, error) {
		if id != 1 {
			return nil, fmt.Errorf("ApproveComment: %w", store.ErrNotFound)
		}
		return &model.Comment{ID: 1, IsApproved: true}, nil
	}
	deleteComment = func(ctx context.Context, db database.DB, id int) error {
		if id != 1 {
			return fmt.Errorf("DeleteComment: %w", store.ErrNotFound)
		}
		return nil
	}

	c, rec := handlertest.JSON(e, http.MethodPut, "/", nil)
	handlertest.WithParams(c, "id", "1")
	require.NoError(t, ApproveCommentHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = handlertest.JSON(e, http.MethodPut, "/", nil)
	handlertest.WithParams(c, "id", "2")
	require.NoError(t, ApproveCommentHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = handlertest.JSON(e, http.MethodDelete, "/", nil)
	handlertest.WithParams(c, "id", "1")
	require.NoError(t, DeleteCommentHandler(&database.FakeDB{})(c))
	require.Equal(t, "Comment deleted successfully", handlertest.Message(rec))

	c, rec = handlertest.JSON(e, http.MethodDelete, "/", nil)
	handlertest.WithParams(c, "id", "2")
	require.NoError(t, DeleteCommentHandler(&database.FakeDB{})(c))
	require.Equal(t, "Comment not found", handlertest.Message(rec))
}
