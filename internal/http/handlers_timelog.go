package http

import (
	"net/http"

	"kuripot/internal/core"
	"kuripot/internal/store"
)

type timeStampRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (s *Server) handleTimeIn(w http.ResponseWriter, r *http.Request) {
	var req timeStampRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.timeLogs.RecordTimeIn(r.Context(), date, req.Time)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleTimeOut(w http.ResponseWriter, r *http.Request) {
	var req timeStampRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.timeLogs.RecordTimeOut(r.Context(), date, req.Time)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListTimeLogs(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	records := s.timeLogs.FilterByDateRange(start, end)
	if records == nil {
		records = []core.TimeLogRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

type timeLogPatchRequest struct {
	TimeIn  *string `json:"timeIn"`
	TimeOut *string `json:"timeOut"`
	Reason  string  `json:"reason"`
}

func (s *Server) handleUpdateTimeLog(w http.ResponseWriter, r *http.Request) {
	var req timeLogPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.timeLogs.Update(r.Context(), r.PathValue("id"), store.TimeLogPatch{
		TimeIn:  req.TimeIn,
		TimeOut: req.TimeOut,
		Reason:  req.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteTimeLog(w http.ResponseWriter, r *http.Request) {
	if err := s.timeLogs.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
