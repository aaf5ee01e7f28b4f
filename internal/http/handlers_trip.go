package http

import (
	"net/http"

	"kuripot/internal/core"
	"kuripot/internal/fare"
	"kuripot/internal/store"
)

type fareQuoteJSON struct {
	OriginStation    string    `json:"originStation"`
	DestStation      string    `json:"destinationStation"`
	StationsTraveled int       `json:"stationsTraveled"`
	TripCount        int       `json:"tripCount"`
	BaseFare         moneyJSON `json:"baseFare"`
	DiscountPercent  int       `json:"discountPercent"`
	DiscountedFare   moneyJSON `json:"discountedFare"`
	TotalCost        moneyJSON `json:"totalCost"`
	TotalSavings     moneyJSON `json:"totalSavings"`
}

func toFareQuoteJSON(q fare.Quote) fareQuoteJSON {
	return fareQuoteJSON{
		OriginStation:    q.OriginStation,
		DestStation:      q.DestStation,
		StationsTraveled: q.StationsTraveled,
		TripCount:        q.TripCount,
		BaseFare:         toMoneyJSON(q.BaseFare),
		DiscountPercent:  q.DiscountPercent,
		DiscountedFare:   toMoneyJSON(q.DiscountedFare),
		TotalCost:        toMoneyJSON(q.TotalCost),
		TotalSavings:     toMoneyJSON(q.TotalSavings),
	}
}

func (s *Server) handleFareQuote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	trips, err := parseIntParam(query, "trips", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	discount, err := parseIntParam(query, "discount", s.defaultDiscount)
	if err != nil {
		writeError(w, err)
		return
	}

	quote, err := fare.Compute(query.Get("from"), query.Get("to"), trips, discount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFareQuoteJSON(quote))
}

func (s *Server) handleFareTable(w http.ResponseWriter, r *http.Request) {
	discount, err := parseIntParam(r.URL.Query(), "discount", s.defaultDiscount)
	if err != nil {
		writeError(w, err)
		return
	}

	quotes, err := fare.Table(discount)
	if err != nil {
		writeError(w, err)
		return
	}
	rows := make([]fareQuoteJSON, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, toFareQuoteJSON(q))
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fare.Stations)
}

type saveTripRequest struct {
	Date            string `json:"date"`
	From            string `json:"from"`
	To              string `json:"to"`
	Trips           int    `json:"trips"`
	DiscountPercent *int   `json:"discountPercent"`
}

type saveTripResponse struct {
	Trip    core.TripRecord    `json:"trip"`
	Expense core.ExpenseRecord `json:"expense"`
}

func (s *Server) handleSaveTrip(w http.ResponseWriter, r *http.Request) {
	var req saveTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	discount := s.defaultDiscount
	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	}
	if req.Trips == 0 {
		req.Trips = 1
	}

	trip, expense, err := s.tripSvc.SaveTrip(r.Context(), date, req.From, req.To, req.Trips, discount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saveTripResponse{Trip: trip, Expense: expense})
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	records := s.trips.FilterByDateRange(start, end)
	if records == nil {
		records = []core.TripRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

type tripPatchRequest struct {
	Date  *string `json:"date"`
	Trips *int    `json:"trips"`
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var patch store.TripPatch
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		patch.Date = &date
	}
	patch.TripCount = req.Trips

	rec, err := s.trips.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
