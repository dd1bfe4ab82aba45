package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FleetRow is one vehicle parsed from a bulk upload workbook.
type FleetRow struct {
	VehicleNumber  string
	Category       string
	CapacityLiters float64
	DriverName     string
	DriverContact  string
}

// VendorRow is one milk vendor parsed from a bulk upload workbook.
type VendorRow struct {
	Name            string
	Lat             float64
	Lon             float64
	DailyMilkLiters float64
	HubName         string
}

// Header aliases tolerate the spreadsheet dialects field teams actually
// upload. Matching is case-insensitive after trimming.
var fleetAliases = map[string][]string{
	"vehicle_number": {"vehicle_number", "vehicle number", "vehicle no", "registration", "plate"},
	"category":       {"category", "type", "vehicle type", "vehicle_type"},
	"capacity":       {"capacity", "capacity_liters", "capacity (l)", "capacity liters"},
	"driver_name":    {"driver_name", "driver name", "driver"},
	"driver_contact": {"driver_contact", "driver contact", "contact", "phone", "mobile"},
}

var vendorAliases = map[string][]string{
	"name":       {"name", "vendor", "vendor name", "farmer", "farmer name"},
	"lat":        {"lat", "latitude"},
	"lon":        {"lon", "lng", "longitude"},
	"daily_milk": {"daily_milk", "daily milk", "milk_liters", "milk (l)", "daily milk liters"},
	"hub":        {"hub", "hub name", "storage hub", "storage_hub"},
}

// ParseFleetWorkbook reads vehicles from the first sheet of an xlsx upload.
// Required columns: vehicle number, category, capacity.
func ParseFleetWorkbook(r io.Reader) ([]FleetRow, error) {
	rows, cols, err := openSheet(r, fleetAliases, []string{"vehicle_number", "category", "capacity"})
	if err != nil {
		return nil, err
	}

	var out []FleetRow
	for i, row := range rows {
		number := strings.TrimSpace(cell(row, cols["vehicle_number"]))
		if number == "" {
			continue // blank rows are common at the bottom of real sheets
		}

		capacity, err := parseFloat(cell(row, cols["capacity"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: capacity: %w", i+2, err)
		}
		if capacity < 0 {
			return nil, fmt.Errorf("row %d: capacity cannot be negative", i+2)
		}

		out = append(out, FleetRow{
			VehicleNumber:  number,
			Category:       strings.ToLower(strings.TrimSpace(cell(row, cols["category"]))),
			CapacityLiters: capacity,
			DriverName:     strings.TrimSpace(cell(row, cols["driver_name"])),
			DriverContact:  strings.TrimSpace(cell(row, cols["driver_contact"])),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("workbook has no vehicle rows")
	}
	return out, nil
}

// ParseVendorWorkbook reads vendors from the first sheet of an xlsx upload.
// Required columns: name, lat, lon, daily milk.
func ParseVendorWorkbook(r io.Reader) ([]VendorRow, error) {
	rows, cols, err := openSheet(r, vendorAliases, []string{"name", "lat", "lon", "daily_milk"})
	if err != nil {
		return nil, err
	}

	var out []VendorRow
	for i, row := range rows {
		name := strings.TrimSpace(cell(row, cols["name"]))
		if name == "" {
			continue
		}

		lat, err := parseFloat(cell(row, cols["lat"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: lat: %w", i+2, err)
		}
		lon, err := parseFloat(cell(row, cols["lon"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: lon: %w", i+2, err)
		}
		milk, err := parseFloat(cell(row, cols["daily_milk"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: daily milk: %w", i+2, err)
		}
		if milk < 0 {
			return nil, fmt.Errorf("row %d: daily milk cannot be negative", i+2)
		}

		out = append(out, VendorRow{
			Name:            name,
			Lat:             lat,
			Lon:             lon,
			DailyMilkLiters: milk,
			HubName:         strings.TrimSpace(cell(row, cols["hub"])),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("workbook has no vendor rows")
	}
	return out, nil
}

// openSheet returns the data rows of the first sheet plus a field->column
// index map resolved through the alias table. Missing optional fields map
// to -1.
func openSheet(r io.Reader, aliases map[string][]string, required []string) ([][]string, map[string]int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	cols := make(map[string]int, len(aliases))
	for field := range aliases {
		cols[field] = -1
	}
	for idx, header := range rows[0] {
		h := strings.ToLower(strings.TrimSpace(header))
		for field, names := range aliases {
			if cols[field] != -1 {
				continue
			}
			for _, alias := range names {
				if h == alias {
					cols[field] = idx
					break
				}
			}
		}
	}

	for _, field := range required {
		if cols[field] == -1 {
			return nil, nil, fmt.Errorf("missing required column %q", field)
		}
	}
	return rows[1:], cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
