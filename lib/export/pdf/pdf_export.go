package pdfexport

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/lib/evaluation/score"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	EvaluationForm(rec dbmodels.Evaluation, printedAt time.Time) ([]byte, error)
}

var Instance Provider

// NewHandler - fontDir с Sarabun-Regular.ttf и Sarabun-Bold.ttf, пусто - встроенный Helvetica (без кириллицы и тайского)
func NewHandler(fontDir string) {
	Instance = NewInstance(fontDir)
}

func NewInstance(fontDir string) Provider {
	return impl{fontDir: fontDir}
}

type impl struct {
	fontDir string
}

const (
	pageWidth  = 190.0
	lineHeight = 6.0
	formCode   = "Form.FR-RC-007 rev. 02"
)

var ratingLabels = []string{"Bad", "Poor", "Fair", "Good", "Very Good", "Excellent", "Perfect"}

func (i impl) EvaluationForm(rec dbmodels.Evaluation, printedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("EvaluationForm panic recover: %v", r)
		}
	}()
	pdf, family := i.newDocument()
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if i.fontDir != "" {
		tr = func(s string) string { return s }
	}

	// заголовок
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(pageWidth, 8, "Probation Evaluation Form", "B", 1, "C", false, 0, "")
	pdf.Ln(3)

	// сотрудник
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(pageWidth, lineHeight, "Employee information", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	field := func(label, value string, width float64, ln int) {
		pdf.SetFont(family, "B", 9)
		labelWidth := pdf.GetStringWidth(label) + 2
		pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 9)
		pdf.CellFormat(width-labelWidth, lineHeight, tr(value), "B", ln, "L", false, 0, "")
	}
	field("Name:", rec.EmployeeName, 130, 0)
	field("ID:", rec.EmployeeID, 60, 1)
	field("Position:", rec.Position, 64, 0)
	field("Section:", rec.Section, 63, 0)
	field("Department:", rec.Department, 63, 1)
	field("Start date:", BuddhistDate(rec.StartDate), 95, 0)
	field("Probation due:", BuddhistDate(rec.DueProbationDate), 95, 1)
	pdf.Ln(3)

	// посещаемость
	att := rec.Attendance
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(pageWidth/2, lineHeight, "Time attendance", "LT", 0, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(pageWidth/2, lineHeight, fmt.Sprintf("From %v to %v", dash(att.AttendFrom), dash(att.AttendTo)), "TR", 1, "R", false, 0, "")
	counter := func(label string, c dbmodels.Counter, unit, subUnit string, border string, ln int) {
		pdf.CellFormat(pageWidth/3, lineHeight, fmt.Sprintf("%v: %d %v %d %v", label, c.Count, unit, c.SubUnit, subUnit), border, ln, "L", false, 0, "")
	}
	counter("Sick leave", att.SickLeave, "days", "hrs", "L", 0)
	counter("Personal leave", att.PersonalLeave, "days", "hrs", "", 0)
	counter("Other leave", att.OtherLeave, "days", "hrs", "R", 1)
	counter("Late", att.Late, "times", "min", "LB", 0)
	counter("Absence", att.Absence, "days", "hrs", "B", 0)
	pdf.CellFormat(pageWidth/3, lineHeight, "", "RB", 1, "L", false, 0, "")
	pdf.Ln(3)

	// таблица оценок
	topicWidth, weightWidth, ratingWidth, scoreWidth := 74.0, 16.0, 12.0, 16.0
	pdf.SetFont(family, "B", 8)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(topicWidth, 10, "Evaluate topics", "1", 0, "L", true, 0, "")
	pdf.CellFormat(weightWidth, 10, "Weight", "1", 0, "C", true, 0, "")
	for idx := range ratingLabels {
		pdf.CellFormat(ratingWidth, 10, fmt.Sprintf("%d", idx+1), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(scoreWidth, 10, "Score", "1", 1, "C", true, 0, "")
	pdf.SetFont(family, "", 9)
	for _, topic := range score.Topics {
		rating := rec.Ratings[topic.ID]
		pdf.CellFormat(topicWidth, lineHeight+1, fmt.Sprintf("%d. %v", topic.ID, topic.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(weightWidth, lineHeight+1, fmt.Sprintf("%d", topic.Weight), "1", 0, "C", false, 0, "")
		for r := score.MinRating; r <= score.MaxRating; r++ {
			mark := ""
			if rating == r {
				mark = fmt.Sprintf("(%d)", r)
			}
			pdf.CellFormat(ratingWidth, lineHeight+1, mark, "1", 0, "C", rating == r, 0, "")
		}
		topicScore := ""
		if rating != 0 {
			topicScore = fmt.Sprintf("%.2f", score.TopicScore(topic.ID, rating))
		}
		pdf.CellFormat(scoreWidth, lineHeight+1, topicScore, "1", 1, "C", false, 0, "")
	}
	res := rec.Score()
	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(topicWidth, lineHeight+1, "Full marks", "1", 0, "R", false, 0, "")
	pdf.CellFormat(weightWidth, lineHeight+1, "100", "1", 0, "C", false, 0, "")
	pdf.CellFormat(ratingWidth*float64(len(ratingLabels)), lineHeight+1, "", "1", 0, "C", false, 0, "")
	pdf.CellFormat(scoreWidth, lineHeight+1, fmt.Sprintf("%.2f", res.Total), "1", 1, "C", false, 0, "")
	pdf.Ln(3)

	// заключение
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(120, lineHeight, "Opinion", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, lineHeight, fmt.Sprintf("Total: %.2f", res.Total), "1", 1, "R", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(120, lineHeight, checkbox(rec.PassProbation)+" Pass probation", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, lineHeight, fmt.Sprintf("Mean: %.2f", res.Mean), "1", 1, "R", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, checkbox(rec.NotPassProbation)+" Not pass probation: "+tr(rec.NotPassReason), "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, checkbox(rec.OtherOpinion)+" Other: "+tr(rec.OtherOpinionText), "", 1, "L", false, 0, "")
	i.signature(pdf, family, "Assessor", rec.AssessorSign, 10)
	pdf.Ln(4)

	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(30, lineHeight, "HR opinion:", "", 0, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.MultiCell(pageWidth-30, lineHeight, tr(dash(rec.HrOpinion)), "B", "L", false)
	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(30, lineHeight, "CEO opinion:", "", 0, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.MultiCell(pageWidth-30, lineHeight, tr(dash(rec.ApproverOpinion)), "B", "L", false)
	pdf.Ln(4)
	top := pdf.GetY()
	i.signature(pdf, family, "HR", rec.HrSign, 10)
	pdf.SetY(top)
	i.signature(pdf, family, "Approver (CEO)", rec.ApproverSign, 110)

	pdf.SetY(-20)
	pdf.SetFont(family, "", 7)
	pdf.CellFormat(pageWidth, 4, fmt.Sprintf("%v (Printed: %v)", formCode, BuddhistDate(printedAt.Format("2006-01-02"))), "", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (i impl) newDocument() (*fpdf.Fpdf, string) {
	if i.fontDir == "" {
		return fpdf.New("P", "mm", "A4", ""), "Helvetica"
	}
	pdf := fpdf.New("P", "mm", "A4", i.fontDir)
	pdf.AddUTF8Font("Sarabun", "", "Sarabun-Regular.ttf")
	pdf.AddUTF8Font("Sarabun", "B", "Sarabun-Bold.ttf")
	return pdf, "Sarabun"
}

// signature - подпись рисуется картинкой из data url, битая картинка пропускается
func (i impl) signature(pdf *fpdf.Fpdf, family, label, dataURL string, x float64) {
	pdf.SetX(x)
	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(35, 16, label+":", "", 0, "L", false, 0, "")
	lineX, lineY := pdf.GetX(), pdf.GetY()
	pdf.CellFormat(50, 16, "", "B", 1, "C", false, 0, "")
	if dataURL == "" {
		return
	}
	name := "sign-" + strings.ToLower(label)
	imgType, err := putImg(pdf, name, dataURL)
	if err != nil {
		log.WithError(err).WithField("signer", label).Warn("подпись не добавлена в pdf")
		return
	}
	pdf.ImageOptions(name, lineX+5, lineY+1, 0, 14, false, fpdf.ImageOptions{ImageType: imgType}, 0, "")
}

func putImg(pdf *fpdf.Fpdf, name, dataURL string) (imgType string, err error) {
	body, imgType, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	if _, _, err = image.DecodeConfig(bytes.NewReader(body)); err != nil {
		return "", errors.Wrap(err, "подпись не является изображением")
	}
	options := fpdf.ImageOptions{
		ReadDpi:   false,
		ImageType: imgType,
	}
	pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(body))
	return imgType, pdf.Error()
}

// DecodeDataURL - data:image/png;base64,... в байты и тип для fpdf
func DecodeDataURL(dataURL string) (body []byte, imgType string, err error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, "", errors.New("подпись должна быть data url с base64")
	}
	imgType = strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64")
	switch imgType {
	case "jpeg":
		imgType = "jpg"
	case "png", "jpg", "gif":
	default:
		return nil, "", errors.Errorf("неподдерживаемый формат подписи: %s", imgType)
	}
	body, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка декодирования подписи")
	}
	return body, imgType, nil
}

var monthNames = []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}

// BuddhistDate - дата в тайском летоисчислении (год + 543), некорректная строка возвращается как есть
func BuddhistDate(value string) string {
	if value == "" {
		return "-"
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%d %v %d", t.Day(), monthNames[t.Month()-1], t.Year()+543)
}

func checkbox(checked bool) string {
	if checked {
		return "[X]"
	}
	return "[  ]"
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
