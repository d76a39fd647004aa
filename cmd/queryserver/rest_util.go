package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/exp/slog"
)

var validate = validator.New()

// Result is a handler's outcome before it is written to the wire: a body
// plus the status it belongs under. Handlers stay pure functions of their
// decoded, validated request; MapPost owns everything HTTP-shaped.
type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{result: value, status: http.StatusOK}
}

func BadRequest[T any](value T) Result {
	return Result{result: value, status: http.StatusBadRequest}
}

func ServerError[T any](value T) Result {
	return Result{result: value, status: http.StatusInternalServerError}
}

func readValidatedBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	if err := validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func writeResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// MapPost registers a POST handler on router that decodes and validates the
// request body as F, invokes handler, and writes the resulting Result.
func MapPost[F any](router *httprouter.Router, path string, handler func(F) Result) {
	router.POST(path, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		slog.Info("POST " + path)
		body, err := readValidatedBody[F](r)
		if err != nil {
			slog.Error("failed POST", "path", path, "error", err)
			writeResponse(w, NewErrorResponse(path, err.Error()), http.StatusBadRequest)
			return
		}
		res := handler(body)
		if res.status != http.StatusOK {
			slog.Error("failed POST", "path", path, "status", res.status)
			writeResponse(w, NewErrorResponse(path, res.result), res.status)
			return
		}
		writeResponse(w, res.result, res.status)
	})
}
