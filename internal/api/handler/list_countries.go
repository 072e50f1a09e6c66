package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type CountryResponse struct {
	Name         string  `json:"name"`
	CallingCode  int     `json:"calling_code"`
	Capital      string  `json:"capital"`
	Population   int64   `json:"population"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchange_rate"`
	Flag         string  `json:"flag"`
}

// ListCountries godoc
// @Summary List countries with their average exchange rate
// @Description Retrieve the latest persisted row of every country
// @Tags Countries
// @Produce json
// @Success 200 {array} CountryResponse
// @Failure 500 {object} errorResponse
// @Router /countries [get]
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.repo.ListLatest(r.Context())
	if err != nil {
		msg := "ups, couldn't list countries this time"
		logrus.WithError(err).WithField("handler", "ListCountries").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, CountryResponse{
			Name:         c.Name,
			CallingCode:  c.CallingCode,
			Capital:      c.Capital,
			Population:   c.Population,
			Currency:     c.CurrencyCode,
			ExchangeRate: c.ExchangeRate,
			Flag:         c.Flag,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(res)
}
