package mux

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"simplepoker-server/internal/util"
	"simplepoker-server/pkg/table"
)

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		rooms, err := table.GetRooms(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, rooms)
	}
}

type postRoomPayload struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.MaxPlayers == 0 {
			pp.MaxPlayers = table.MaxPlayers
		}

		if err := table.ValidateRoomOptions(pp.Name, pp.MaxPlayers); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		rm, err := table.CreateRoom(r.Context(), pp.Name, pp.MaxPlayers)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, rm)
	}
}

type getRoomUUIDResponse struct {
	*table.Room
	Players []*table.Player `json:"players"`
}

func (m *Mux) getRoomUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rm := r.Context().Value(ctxRoomKey).(*table.Room)
		players, err := rm.GetPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, getRoomUUIDResponse{
			Room:    rm,
			Players: players,
		})
	})
}

type postJoinPayload struct {
	Name string `json:"name"`
}

func (m *Mux) postRoomUUIDJoin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postJoinPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Name == "" {
			pp.Name = util.GetRandomName()
		}

		rm := r.Context().Value(ctxRoomKey).(*table.Room)

		player, err := rm.CreatePlayer(r.Context(), uuid.New().String(), pp.Name)
		if err != nil {
			var ue table.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		writeJSON(w, http.StatusCreated, player)
	})
}
