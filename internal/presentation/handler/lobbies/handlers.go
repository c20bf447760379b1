package lobbies

import (
	"errors"
	"net/http"

	"github.com/calderahq/hearth/internal/domain"
	"github.com/calderahq/hearth/internal/infrastructure/json"
	"github.com/calderahq/hearth/internal/infrastructure/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	registry    domain.LobbyRegistry
	store       domain.MessageStore
	coordinator *ws.Coordinator
	validate    *validator.Validate
	logger      *zap.SugaredLogger
}

func NewHandler(
	registry domain.LobbyRegistry,
	store domain.MessageStore,
	coordinator *ws.Coordinator,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		registry:    registry,
		store:       store,
		coordinator: coordinator,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

func (h *Handler) CreateLobbyHandler(w http.ResponseWriter, r *http.Request) {
	var req createLobbyRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	lobby, err := h.registry.Create(req.Nickname, req.AssistantKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidNickname), errors.Is(err, domain.ErrInvalidCredential):
			json.WriteValidationError(w, err)
		default:
			h.logger.Errorw("failed to create lobby", "error", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusCreated, createLobbyResponse{Code: lobby.Code})
}

// JoinLobbyHandler is the request/response pre-check: it confirms a lobby is
// joinable before the client opens its live connection. It establishes no
// membership.
func (h *Handler) JoinLobbyHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := domain.ValidateCode(code); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	var req joinLobbyRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if !h.registry.Exists(code) {
		json.WriteNotFoundError(w, domain.ErrLobbyNotFound, "Lobby not found")
		return
	}

	json.Write(w, http.StatusOK, joinLobbyResponse{OK: true})
}

func (h *Handler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := domain.ValidateCode(code); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if !h.registry.Exists(code) {
		json.WriteNotFoundError(w, domain.ErrLobbyNotFound, "Lobby not found")
		return
	}

	messages, err := h.store.ListByLobby(r.Context(), code)
	if err != nil {
		h.logger.Errorw("failed to list messages", "lobby", code, "error", err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, historyResponse{Messages: messages})
}

// ConnectHandler upgrades to a WebSocket and starts the connection's pumps.
// The connection identity is minted here; lobby membership comes later via
// the lobby.join event.
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.coordinator.Upgrade(w, r)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString())

	go client.WritePump(h.coordinator)
	go client.ReadPump(h.coordinator)
}
