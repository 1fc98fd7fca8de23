package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/store"
)

// exportService renders the caller's scoped student records into Excel
// workbooks and PDF profile cards. It reads through the same
// ownership-scoped repository as the rest of the application, so an
// export can never include foreign records.
type exportService struct {
	studentRepository store.StudentRepository
	logger            *logger.Logger
}

// NewExportService constructs an ExportService backed by the given
// repository.
func NewExportService(studentRepository store.StudentRepository, logger *logger.Logger) ExportService {
	return &exportService{
		studentRepository: studentRepository,
		logger:            logger,
	}
}

var excelHeader = []string{"ID", "First Name", "Last Name", "Email", "Phone", "Gender"}

// StudentsExcel renders every record owned by ownerID into a single-sheet
// .xlsx workbook with a header row.
func (e *exportService) StudentsExcel(ctx context.Context, ownerID int64) ([]byte, error) {
	log := logger.FromContext(ctx)

	students, err := e.studentRepository.ListAllStudents(ctx, ownerID)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Msg("student listing for export ended with error")
		return nil, fmt.Errorf("student listing for export ended with error: %w", err)
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	const sheet = "Students"
	index, err := workbook.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	for column, title := range excelHeader {
		cell, err := excelize.CoordinatesToCellName(column+1, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
		if err := workbook.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
	}

	for i, student := range students {
		values := []any{
			student.StudentID, student.FirstName, student.LastName,
			student.Email, student.Phone, student.Gender,
		}
		for column, value := range values {
			cell, err := excelize.CoordinatesToCellName(column+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	return buf.Bytes(), nil
}

// StudentPDF renders a single owned record into a one-page profile card.
// A scoped miss propagates store.ErrStudentNotFound unchanged.
func (e *exportService) StudentPDF(ctx context.Context, ownerID, studentID int64) ([]byte, error) {
	log := logger.FromContext(ctx)

	student, err := e.studentRepository.FindStudentByID(ctx, ownerID, studentID)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Int64("studentID", studentID).Msg("student search for export ended with error")
		return nil, fmt.Errorf("student search for export ended with error: %w", err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "Student Profile", "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 12)
	rows := []struct{ label, value string }{
		{"ID", strconv.FormatInt(student.StudentID, 10)},
		{"First Name", student.FirstName},
		{"Last Name", student.LastName},
		{"Email", student.Email},
		{"Phone", student.Phone},
		{"Gender", student.Gender},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(45, 10, row.label, "1", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 12)
		doc.CellFormat(0, 10, row.value, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	return buf.Bytes(), nil
}
