package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"

	"simplepoker-server/pkg/room"
	"simplepoker-server/pkg/table"
)

type ctxKey int

const ctxRoomKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	floor   *room.Floor
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	floor := room.NewFloor()
	floor.Open()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		floor:   floor,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/room").Handler(this.getRoom())
	r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

	rr := r.PathPrefix("/room/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	rr.Use(this.roomMiddleware)

	rr.Methods(http.MethodGet).Path("").Handler(this.getRoomUUID())
	rr.Methods(http.MethodPost).Path("/join").Handler(this.postRoomUUIDJoin())
	rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomUUIDWS())

	return this
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		rm, err := table.GetRoomByID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxRoomKey, rm)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
