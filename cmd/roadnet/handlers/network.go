package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gridworks/roadnet/cmd/roadnet/middleware"
	"github.com/gridworks/roadnet/cmd/roadnet/service"
	"github.com/gridworks/roadnet/common/apperr"
)

// NetworkHandler maps transport requests onto the four network service
// operations.
type NetworkHandler struct {
	networks *service.NetworkService
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(networks *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{networks: networks}
}

type createNetworkRequest struct {
	Name    string         `json:"name"`
	Public  bool           `json:"public"`
	GeoJSON map[string]any `json:"geojson"`
}

type appendVersionRequest struct {
	NetworkID   int64          `json:"network_id"`
	NetworkName string         `json:"network_name"`
	GeoJSON     map[string]any `json:"geojson"`
}

// Create creates a network at version 1 from an uploaded document
// POST /api/v1/networks
func (h *NetworkHandler) Create(c echo.Context) error {
	req := new(createNetworkRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	projection, err := h.networks.CreateNetwork(
		c.Request().Context(),
		middleware.CallerIdentity(c),
		req.Name,
		req.Public,
		req.GeoJSON,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, projection)
}

// Append appends an uploaded document as the network's next version
// POST /api/v1/networks/versions
func (h *NetworkHandler) Append(c echo.Context) error {
	req := new(appendVersionRequest)
	if err := c.Bind(req); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	projection, err := h.networks.AppendVersion(
		c.Request().Context(),
		middleware.CallerIdentity(c),
		service.NetworkRef{ID: req.NetworkID, Name: req.NetworkName},
		req.GeoJSON,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, projection)
}

// Get returns a network's metadata projection
// GET /api/v1/networks?id=&name=
func (h *NetworkHandler) Get(c echo.Context) error {
	id, err := queryInt(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	projection, err := h.networks.GetNetwork(
		c.Request().Context(),
		middleware.CallerIdentity(c),
		service.NetworkRef{ID: id, Name: c.QueryParam("name")},
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, projection)
}

// Edges returns one snapshot's decoded features; version 0 or unset selects
// the latest version
// GET /api/v1/networks/edges?network_id=&network_name=&version=
func (h *NetworkHandler) Edges(c echo.Context) error {
	id, err := queryInt(c, "network_id")
	if err != nil {
		return respondError(c, err)
	}
	version, err := queryInt(c, "version")
	if err != nil {
		return respondError(c, err)
	}

	projection, err := h.networks.GetMapFeatures(
		c.Request().Context(),
		middleware.CallerIdentity(c),
		service.NetworkRef{ID: id, Name: c.QueryParam("network_name")},
		int(version),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, projection)
}

// queryInt parses an optional integer query parameter; absent means 0
// (unset).
func queryInt(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("parameter '%s' must be an integer", name)
	}
	return value, nil
}
