package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Message(w http.ResponseWriter, status int, message string, details any) {
	write(w, status, Response{
		Status:  StatusSuccess,
		Message: message,
		Details: details,
	})
}

func Error(w http.ResponseWriter, status int, message string, err error) {
	resp := Response{
		Status:  StatusError,
		Message: message,
	}
	if err != nil {
		resp.Details = err.Error()
	}
	write(w, status, resp)
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	body, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"status": %q, "message": %q, "details": %q}`, StatusError, resp.Message, marshalErr.Error())
		return
	}

	w.WriteHeader(status)
	w.Write(body)
}
