package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// appName tags every log line so mixed process streams stay separable.
const appName = "pose-game"

var debugOut io.Writer = os.Stdout

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	App     string  `json:"app"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

// Debug emits one JSON log line attributed to the emitting service.
func Debug(service string, message string) {
	DebugWith(service, message, nil)
}

// DebugWith attaches extra context fields to the log line.
func DebugWith(service string, message string, extra Context) {
	context := make(Context, len(extra)+1)
	for key, value := range extra {
		context[key] = value
	}

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	data, _ := json.Marshal(Message{
		Time:    time.Now().Format(time.RFC3339),
		App:     appName,
		Service: service,
		Message: message,
		Context: context,
	})

	fmt.Fprintln(debugOut, string(data))
}
