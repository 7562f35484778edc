package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/logging"
	"github.com/khata-labs/ledger-server/internal/service"
)

// ListItemsCursor represents a pagination cursor in request and response bodies.
type ListItemsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListItemsBody is the request body for listing catalog entries.
type ListItemsBody struct {
	Query  string           `json:"query,omitempty" doc:"Name filter; when set, paging is disabled"`
	Cursor *ListItemsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListItemsInput is the Huma input for listing catalog entries.
type ListItemsInput struct {
	Body ListItemsBody
}

// ListItemsResponseBody is the response body for listing catalog entries.
type ListItemsResponseBody struct {
	Items      []Item           `json:"items" doc:"Page of catalog entries"`
	NextCursor *ListItemsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListItemsOutput is the Huma output for listing catalog entries.
type ListItemsOutput struct {
	Body ListItemsResponseBody
}

// itemLister is the interface for listing catalog entries.
type itemLister interface {
	ListItems(ctx context.Context, userID string, query string, cursor *service.ItemCursor) ([]service.Item, *service.ItemCursor, error)
}

// ListItemsHandler handles POST /v1/item/list.
type ListItemsHandler struct {
	ItemService itemLister
}

// NewListItemsHandler creates a new ListItemsHandler.
func NewListItemsHandler(svc itemLister) *ListItemsHandler {
	return &ListItemsHandler{ItemService: svc}
}

// Register registers the list items endpoint with the Huma API.
func (h *ListItemsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodPost,
		Path:        "/v1/item/list",
		Summary:     "List items",
		Description: "Returns catalog entries, paginated or filtered by a name query.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func (h *ListItemsHandler) handle(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	var requestCursor *service.ItemCursor
	if input.Body.Cursor != nil {
		requestCursor = &service.ItemCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listItemsMs")
	}
	items, nextCursor, err := h.ItemService.ListItems(ctx, userID, input.Body.Query, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list items", err)
	}

	if logData != nil {
		logData.AddData("itemCount", len(items))
	}

	resp := ListItemsResponseBody{
		Items: make([]Item, len(items)),
	}
	for i, it := range items {
		resp.Items[i] = fromService(it)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListItemsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListItemsOutput{Body: resp}, nil
}
