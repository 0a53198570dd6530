package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"guestdesk-backend/models"
	"guestdesk-backend/utils"
)

// Detail report palette, shared with the web table's status badges.
var statusColors = map[string][3]int{
	utils.StatusVerified:   {34, 197, 94},
	utils.StatusPending:    {234, 179, 8},
	utils.StatusFailed:     {239, 68, 68},
	utils.StatusProcessing: {59, 130, 246},
	utils.StatusUnknown:    {156, 163, 175},
}

var headerFill = [3]int{27, 54, 49}

// ExportService renders guest reports. Tabular exports are pure; the
// detailed per-guest report additionally pulls identity photos through the
// image service, strictly one guest at a time so a failure is attributable
// to exactly one page.
type ExportService struct {
	Images *ImageService
	DB     *gorm.DB

	log *zap.SugaredLogger
}

func NewExportService(images *ImageService, db *gorm.DB, log *zap.SugaredLogger) *ExportService {
	return &ExportService{Images: images, DB: db, log: log}
}

// ExportTable renders the flat guest table in the requested format
// ("pdf" or "excel") and returns the filename and file bytes.
func (s *ExportService) ExportTable(format, title string, columns []utils.ExportColumn, rows []map[string]string) (string, []byte, error) {
	var (
		data []byte
		err  error
		ext  string
	)
	switch format {
	case "excel":
		data, err = utils.TabularExcel(columns, rows)
		ext = "xlsx"
	case "pdf":
		data, err = utils.TabularPDF(title, columns, rows)
		ext = "pdf"
	default:
		return "", nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("%s_%s.%s", sanitizeFilename(title), time.Now().Format("2006-01-02"), ext)
	s.recordExport(format, filename, len(rows), columns)
	return filename, data, nil
}

// ExportGuestDetails renders one full A4 page per guest, in selection order,
// and returns the filename and PDF bytes. A guest whose photo fetch fails
// still gets a page, just without the photo.
func (s *ExportService) ExportGuestDetails(ctx context.Context, guests []models.CanonicalGuest) (string, []byte, error) {
	if len(guests) == 0 {
		return "", nil, fmt.Errorf("no guests selected for export")
	}

	generatedAt := reportClock()

	// Photos first, sequentially. The map is keyed by the composite guest
	// key so guests sharing a booking id cannot pick up each other's photo.
	photos := make(map[string]string, len(guests))
	for i := range guests {
		g := &guests[i]
		photos[g.ImageKey()] = s.guestPhoto(ctx, g)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i := range guests {
		s.renderGuestPage(pdf, &guests[i], i, len(guests), photos[guests[i].ImageKey()], generatedAt)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, fmt.Errorf("render detail report: %w", err)
	}

	var filename string
	if len(guests) == 1 {
		filename = fmt.Sprintf("Guest_Details_%s_%s.pdf",
			sanitizeFilename(guests[0].BookingID), time.Now().Format("2006-01-02"))
	} else {
		filename = fmt.Sprintf("Guest_Details_%d_Guests_%s.pdf",
			len(guests), time.Now().Format("2006-01-02_15-04"))
	}

	s.recordExport("details", filename, len(guests), nil)
	return filename, buf.Bytes(), nil
}

// guestPhoto resolves one guest's photo: an inline image on the record wins,
// otherwise the image endpoint is queried by phone. Returns "" when there is
// nothing usable; errors stay inside.
func (s *ExportService) guestPhoto(ctx context.Context, g *models.CanonicalGuest) string {
	if g.Raw != nil && g.Raw.Image != "" {
		if strings.HasPrefix(g.Raw.Image, "data:") {
			return g.Raw.Image
		}
		return "data:image/jpeg;base64," + g.Raw.Image
	}

	number := g.PhoneNumber
	if number == "" {
		number = g.Phone
	}
	if number == "" {
		return ""
	}
	return s.Images.FetchWithRetry(ctx, g.PhoneCountryCode, number)
}

func (s *ExportService) renderGuestPage(pdf *fpdf.Fpdf, g *models.CanonicalGuest, index, total int, photo, generatedAt string) {
	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()

	const margin = 15.0
	contentWidth := pageWidth - 2*margin
	contentStartX := margin + 6
	col2X := pageWidth/2 + 5

	// Header band
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.Rect(0, 0, pageWidth, 32, "F")
	s.text(pdf, "Guest Details Report", margin, 12, 16, "B", [3]int{255, 255, 255})
	s.text(pdf, "Booking ID: "+g.BookingID, margin, 20, 10, "", [3]int{200, 220, 210})
	s.text(pdf, fmt.Sprintf("Guest %d of %d", index+1, total), margin, 27, 8, "", [3]int{180, 200, 190})

	y := 38.0

	// Section A — identity
	y = s.sectionHeader(pdf, "A. Guest Identity Details", margin, contentStartX, y)

	hasPhoto := photo != ""
	sectionHeight := 40.0
	if hasPhoto {
		sectionHeight = 48
	}
	pdf.SetFillColor(249, 250, 251)
	pdf.Rect(margin, y-2, contentWidth, sectionHeight, "F")

	const photoWidth, photoHeight = 28.0, 35.0
	identityX := contentStartX
	if hasPhoto {
		if s.embedPhoto(pdf, photo, g.ImageKey(), contentStartX, y, photoWidth, photoHeight) {
			identityX = contentStartX + photoWidth + 5
		} else {
			hasPhoto = false
		}
	}

	fullName := g.FullName
	if fullName == "" || fullName == "-" {
		fullName = strings.TrimSpace(g.FirstName + " " + g.LastName)
	}

	s.field(pdf, "Full Name", fullName, identityX, y+3)
	s.field(pdf, "Age (Years)", utils.AgeAtVerification(g.DateOfBirth, g.AadhaarVerificationTimestamp), col2X, y+3)
	s.field(pdf, "Gender", g.Gender, identityX, y+15)
	s.field(pdf, "Nationality", g.Nationality, col2X, y+15)

	s.fieldLabel(pdf, "Verification Status", identityX, y+27)
	s.trafficLight(pdf, g.VerificationStatus, identityX, y+32)
	s.field(pdf, "DigiLocker Reference ID", g.DigiLockerReferenceID, col2X, y+27)

	if hasPhoto {
		y += 50
	} else {
		y += 40
	}

	s.field(pdf, "Masked Aadhaar Number", utils.MaskAadhaar(g.AadhaarNumber), contentStartX, y-3)
	s.field(pdf, "Verification Timestamp", g.AadhaarVerificationTimestamp, col2X, y-3)

	y += 9
	s.rule(pdf, margin, pageWidth-margin, y)
	y += 6

	// Section B — contact
	y = s.sectionHeader(pdf, "B. Contact Information", margin, contentStartX, y)
	pdf.SetFillColor(249, 250, 251)
	pdf.Rect(margin, y-2, contentWidth, 30, "F")

	s.field(pdf, "Mobile Number", utils.MaskPhone(g.Phone), contentStartX, y+3)
	email := g.Email
	if len(email) > 30 {
		email = email[:30] + "..."
	}
	s.field(pdf, "Email ID", email, col2X, y+3)
	s.field(pdf, "City", g.City, contentStartX, y+15)
	s.field(pdf, "State", g.State, col2X-30, y+15)
	s.field(pdf, "PIN Code", g.PinCode, col2X+30, y+15)

	y += 31
	s.rule(pdf, margin, pageWidth-margin, y)
	y += 6

	// Section C — booking
	y = s.sectionHeader(pdf, "C. Booking & Stay Details", margin, contentStartX, y)
	pdf.SetFillColor(249, 250, 251)
	pdf.Rect(margin, y-2, contentWidth, 25, "F")

	s.field(pdf, "Booking ID", g.BookingID, contentStartX, y+3)
	s.field(pdf, "Booking Source", g.BookingSource, col2X, y+3)
	s.field(pdf, "Check-in Date & Time", g.CheckInDateTime, contentStartX, y+15)

	// Footer
	pdf.SetFillColor(249, 250, 251)
	pdf.Rect(0, pageHeight-18, pageWidth, 18, "F")
	s.rule(pdf, margin, pageWidth-margin, pageHeight-18)

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(margin, pageHeight-10, "Confidential - Guest Details Report")
	pageLabel := fmt.Sprintf("Page %d of %d", index+1, total)
	pdf.Text(pageWidth-margin-pdf.GetStringWidth(pageLabel), pageHeight-10, pageLabel)
	generated := "Report Generated: " + generatedAt
	pdf.Text((pageWidth-pdf.GetStringWidth(generated))/2, pageHeight-5, generated)
}

func (s *ExportService) text(pdf *fpdf.Fpdf, txt string, x, y, size float64, style string, color [3]int) {
	pdf.SetFont("Helvetica", style, size)
	pdf.SetTextColor(color[0], color[1], color[2])
	if txt == "" {
		txt = "N/A"
	}
	pdf.Text(x, y, txt)
}

func (s *ExportService) fieldLabel(pdf *fpdf.Fpdf, label string, x, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(x, y, label)
}

func (s *ExportService) field(pdf *fpdf.Fpdf, label, value string, x, y float64) {
	s.fieldLabel(pdf, label, x, y)
	s.text(pdf, value, x, y+4, 9, "", [3]int{0, 0, 0})
}

func (s *ExportService) sectionHeader(pdf *fpdf.Fpdf, title string, margin, textX, y float64) float64 {
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.Rect(margin, y, 2.5, 6, "F")
	s.text(pdf, title, textX, y+4.5, 10, "B", [3]int{0, 0, 0})
	return y + 10
}

func (s *ExportService) rule(pdf *fpdf.Fpdf, x1, x2, y float64) {
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.3)
	pdf.Line(x1, y, x2, y)
}

// trafficLight draws the colored status dot plus its label.
func (s *ExportService) trafficLight(pdf *fpdf.Fpdf, status string, x, y float64) {
	color, ok := statusColors[status]
	label := status
	if !ok {
		color = statusColors[utils.StatusUnknown]
		label = utils.StatusUnknown
	}
	pdf.SetFillColor(color[0], color[1], color[2])
	pdf.Circle(x+1.5, y-1.2, 1.1, "F")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(color[0], color[1], color[2])
	pdf.Text(x+5, y, label)
}

// embedPhoto decodes a data URL and places the image. Returns false when the
// payload does not decode; a broken photo never breaks the page.
func (s *ExportService) embedPhoto(pdf *fpdf.Fpdf, dataURL, key string, x, y, w, h float64) bool {
	payload, imageType, ok := decodeDataURL(dataURL)
	if !ok {
		s.log.Warnw("guest photo did not decode, rendering page without it", "key", key)
		return false
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(payload))
	if pdf.Err() {
		s.log.Warnw("guest photo rejected by renderer", "key", key, "error", pdf.Error())
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(key, x, y, w, h, false, opts, 0, "")
	return true
}

func decodeDataURL(dataURL string) ([]byte, string, bool) {
	rest, found := strings.CutPrefix(dataURL, "data:")
	if !found {
		return nil, "", false
	}
	meta, payload, found := strings.Cut(rest, ";base64,")
	if !found {
		return nil, "", false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}

	imageType := "JPG"
	switch meta {
	case "image/png":
		imageType = "PNG"
	case "image/gif":
		imageType = "GIF"
	}
	return data, imageType, true
}

// recordExport appends to the export audit log. Failures are logged and
// swallowed; bookkeeping never blocks a download.
func (s *ExportService) recordExport(format, filename string, rowCount int, columns []utils.ExportColumn) {
	if s.DB == nil {
		return
	}
	entry := models.ExportLog{Format: format, Filename: filename, RowCount: rowCount}
	if len(columns) > 0 {
		if b, err := json.Marshal(columns); err == nil {
			entry.Columns = datatypes.JSON(b)
		}
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		s.log.Warnw("failed to record export", "filename", filename, "error", err)
	}
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}

// reportClock renders the report generation stamp in the property's zone.
func reportClock() string {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format("02 Jan 2006, 03:04:05 PM")
}
