package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"milk-collection-service/internal/domain"
)

// BuildScheduleReport renders the collection schedule as a printable PDF,
// one page per cluster with a trip table and the cluster totals.
func BuildScheduleReport(s domain.Schedule) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	for _, cluster := range s.Clusters {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Milk Collection Schedule - %s", cluster.Name), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Vehicles used: %d    Assigned milk: %.0f L    Fullness: %.2f%%",
			cluster.Stats.VehiclesUsed, cluster.Stats.TotalAssignedMilkLiters, cluster.Stats.FullnessPercent), "", 1, "L", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		headers := []struct {
			label string
			width float64
		}{
			{"Trip", 28},
			{"Vehicle", 34},
			{"Stops", 16},
			{"Milk (L)", 22},
			{"Distance (km)", 28},
			{"Travel (min)", 24},
			{"Utilization (%)", 28},
		}
		for _, h := range headers {
			pdf.CellFormat(h.width, 7, h.label, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, trip := range cluster.Trips {
			pdf.CellFormat(28, 6, trip.ID, "1", 0, "L", false, 0, "")
			pdf.CellFormat(34, 6, trip.VehicleLabel, "1", 0, "L", false, 0, "")
			pdf.CellFormat(16, 6, fmt.Sprintf("%d", len(trip.FarmerStops)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(22, 6, fmt.Sprintf("%.0f", trip.TotalMilkLiters), "1", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", trip.DistanceKm), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 6, fmt.Sprintf("%d", trip.TravelTimeMinutes), "1", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", trip.UtilizationPercent), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}

		if len(cluster.Stats.LowUtilizedTrips) > 0 || len(cluster.Stats.UnusedTrips) > 0 {
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "I", 9)
			if len(cluster.Stats.LowUtilizedTrips) > 0 {
				pdf.CellFormat(0, 5, fmt.Sprintf("Low utilized trips: %s", joinUtilizations(cluster.Stats.LowUtilizedTrips)), "", 1, "L", false, 0, "")
			}
			if len(cluster.Stats.UnusedTrips) > 0 {
				pdf.CellFormat(0, 5, fmt.Sprintf("Unused trips: %s", joinIDs(cluster.Stats.UnusedTrips)), "", 1, "L", false, 0, "")
			}
		}
	}

	if len(s.Clusters) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 10, "No schedule available.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render schedule report: %w", err)
	}
	return buf.Bytes(), nil
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

func joinUtilizations(trips []domain.TripUtilization) string {
	parts := make([]string, len(trips))
	for i, t := range trips {
		parts[i] = fmt.Sprintf("%s (%.2f%%)", t.TripID, t.Percent)
	}
	return strings.Join(parts, ", ")
}
