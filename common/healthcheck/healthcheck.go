package healthcheck

import (
	"encoding/json"
	"net/http"

	"github.com/zenjiro/pose-game/common/utils"
)

type HealthCheckServer struct {
	Checkers []check
	port     string
}

type HealthChecks struct {
	Status bool
	Name   string
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks
	StatusCode int
}

type HealthCheckHandler func() (err error, ok bool)

type check struct {
	name    string
	handler HealthCheckHandler
}

func (server *HealthCheckServer) httpHandler(w http.ResponseWriter, r *http.Request) {
	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0),
		StatusCode: 200,
	}

	for _, checker := range server.Checkers {
		err, checkerRes := checker.handler()

		if err == nil {
			res.Checks = append(res.Checks, HealthChecks{
				Status: checkerRes,
				Name:   checker.name,
			})

			if !checkerRes {
				res.StatusCode = http.StatusServiceUnavailable
			}
		} else {
			res.StatusCode = http.StatusInternalServerError
		}
	}

	data, err := json.Marshal(res)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}

func NewHealthCheckServer(port string) *HealthCheckServer {
	return &HealthCheckServer{
		port: port,
	}
}

func (server *HealthCheckServer) Listen() {
	http.HandleFunc("/health", server.httpHandler)

	err := http.ListenAndServe(":"+server.port, nil)
	utils.Check(err, "Failed to listen on :"+server.port)
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.Checkers = append(server.Checkers, check{name: name, handler: handler})
}
