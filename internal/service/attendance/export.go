package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var rosterHeaders = []string{
	"No", "Username", "Full Name", "Status",
	"Check In", "Check In Latitude", "Check In Longitude",
	"Check Out", "Check Out Latitude", "Check Out Longitude",
}

// ExportDailyRoster implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportDailyRoster(ctx context.Context, date string) (attendance.ExportFile, error) {
	roster, err := a.DailyRoster(ctx, date)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	content, err := renderRoster(roster)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to render roster: %w", err)
	}

	return attendance.ExportFile{
		Filename:    fmt.Sprintf("attendance-%s.xlsx", roster.Date),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

func renderRoster(roster attendance.DailyRosterResponse) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := roster.Date
	if err := file.SetSheetName(file.GetSheetName(file.GetActiveSheetIndex()), sheet); err != nil {
		return nil, err
	}

	for i, header := range rosterHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for index, entry := range roster.Entries {
		values := []interface{}{
			index + 1,
			entry.Username,
			entry.FullName,
			entry.Status,
			derefString(entry.CheckInTime),
			derefFloat(entry.CheckInLatitude),
			derefFloat(entry.CheckInLongitude),
			derefString(entry.CheckOutTime),
			derefFloat(entry.CheckOutLatitude),
			derefFloat(entry.CheckOutLongitude),
		}
		cell, err := excelize.CoordinatesToCellName(1, index+2)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	summaryRow := len(roster.Entries) + 3
	summary := []interface{}{"Total", roster.Total, "Present", roster.Present, "Late", roster.Late, "Absent", roster.Absent}
	cell, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return nil, err
	}
	if err := file.SetSheetRow(sheet, cell, &summary); err != nil {
		return nil, err
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func derefString(s *string) interface{} {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}
