package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	consumptiondomain "github.com/sunstack-labs/sunstack/internal/consumption/domain"
)

// ParseHourlyCSV reads an uploaded meter export: one numeric kWh value per
// row (a single header row is tolerated). Exactly 8760 values are required.
func ParseHourlyCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	values := make([]float64, 0, consumptiondomain.HoursPerYear)
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, consumptiondomain.ErrInvalidHourlyProfile
		}
		if len(record) == 0 {
			continue
		}
		field := strings.TrimSpace(record[0])
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			if first {
				// header row
				first = false
				continue
			}
			return nil, consumptiondomain.ErrInvalidHourlyProfile
		}
		first = false
		values = append(values, v)
	}

	if len(values) != consumptiondomain.HoursPerYear {
		return nil, consumptiondomain.ErrInvalidHourlyProfile
	}
	return values, nil
}
