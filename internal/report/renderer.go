package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"recruiting-bot/internal/storage"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Renderer превращает анкету с результатами тестирования в PDF отчет
type Renderer struct {
	outputDir string
	log       *zap.Logger
}

// NewRenderer создает новый рендерер отчетов
func NewRenderer(outputDir string, log *zap.Logger) *Renderer {
	return &Renderer{outputDir: outputDir, log: log}
}

// Render рендерит HTML отчет и печатает его в PDF через headless Chromium.
// Возвращает путь к готовому PDF файлу.
func (r *Renderer) Render(profile *storage.Profile) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания директории %s: %w", r.outputDir, err)
	}

	htmlPath := filepath.Join(r.outputDir, fmt.Sprintf("report_%s.html", profile.ID))
	pdfPath := filepath.Join(r.outputDir, fmt.Sprintf("report_%s.pdf", profile.ID))

	if err := r.writeHTML(profile, htmlPath); err != nil {
		return "", err
	}
	defer os.Remove(htmlPath)

	if err := r.printToPDF(htmlPath, pdfPath); err != nil {
		return "", err
	}

	r.log.Info("отчет сформирован",
		zap.String("profile_id", profile.ID),
		zap.String("path", pdfPath))

	return pdfPath, nil
}

func (r *Renderer) writeHTML(profile *storage.Profile, path string) error {
	score := 0
	if profile.AptitudeScore != nil {
		score = *profile.AptitudeScore
	}

	specs := make([]string, len(profile.Specializations))
	for i, s := range profile.Specializations {
		specs[i] = s.Name
	}

	gender := "Мужской"
	if profile.Gender == "female" {
		gender = "Женский"
	}

	data := reportData{
		FullName:        profile.FullName,
		Age:             Age(profile.BirthDate, time.Now()),
		Gender:          gender,
		Region:          profile.Region.Name,
		Specializations: specs,
		PhoneNumber:     profile.PhoneNumber,
		CVURL:           profile.CVURL,

		AptitudeScore: score,
		Grade:         Grade(score),

		InterpersonalResult:         profile.InterpersonalResult,
		InterpersonalRecommendation: profile.InterpersonalRecommendation,
		TechnicalResult:             profile.TechnicalResult,
		TechnicalRecommendation:     profile.TechnicalRecommendation,

		GeneratedAt: time.Now().Format("02.01.2006 15:04"),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("ошибка рендеринга шаблона: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("ошибка записи HTML %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) printToPDF(htmlPath, pdfPath string) error {
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("ошибка определения пути %s: %w", htmlPath, err)
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return fmt.Errorf("ошибка запуска браузера: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("ошибка подключения к браузеру: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + absPath})
	if err != nil {
		return fmt.Errorf("ошибка открытия страницы: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("ошибка загрузки страницы: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{})
	if err != nil {
		return fmt.Errorf("ошибка печати в PDF: %w", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("ошибка чтения PDF: %w", err)
	}

	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("ошибка записи PDF %s: %w", pdfPath, err)
	}
	return nil
}
