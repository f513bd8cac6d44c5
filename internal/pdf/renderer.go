// Package pdf renders laid-out attestation documents onto the fixed
// certificate templates. The layout (bucketing, validity date, pagination)
// is computed by the service layer; this package only stamps text and images
// at fixed coordinates and concatenates pages into one output document.
package pdf

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/signintech/gopdf"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// Template and asset file names inside the renderer's static directory.
const (
	eligibleTemplate   = "eea-formulaire.pdf"
	ineligibleTemplate = "eea-formulaire2.pdf"
	rowFontFile        = "OpenSans.ttf"
	headingFontFile    = "AvenirLTProHeavy.ttf"
	disclaimerFontFile = "Calibri.ttf"
	logoFile           = "logo_easyeea.png"
)

// Fixed layout of the certificate templates. All coordinates are measured
// from the top-left of an A4 page, translated from the reference templates.
const (
	rowStartY   = 505.0
	rowHeight   = 21.0
	dateX       = 100.0
	originX     = 162.5
	destX       = 275.0
	timeX       = 400.0
	marginX     = 55.0
	headerY     = 760.0
	textWidth   = 475.0
	logoScale   = 0.25
	rowFontSize = 10
)

// classLabels maps internal class codes to the printed label.
// An empty or unknown code prints as second class.
var classLabels = map[string]string{
	domain.ClassSecond: "2nd",
	domain.ClassFirst:  "1ère",
}

// Explanatory and disclaimer blocks stamped on the ineligible-trips document.
// The wording is part of the document's visual contract and must not change.
var (
	ineligibleIntro = "Vous trouverez sur ce document vos trajets non-éligibles à la réduction EEA de SNCF Voyageurs et du Ministère des Transports."

	ineligibleHowTo = "Vous pouvez présenter cette liste à un vendeur en gare (comme pour vos trajets éligibles) ou les acheter en ligne (sur SNCF Connect ou sur ter.sncf.com)."

	ineligibleWarning = "/!\\ Seuls sont listés les trajets du dossier que vous avez téléchargé. Aucun minimum de trajets n'est requis pour acheter cette liste. Il en va de même pour le délai de 60 jours pour les trajets éligibles à la réduction EEA."

	ineligibleLiability = "Toute ressemblance avec un document produit par SNCF Voyageurs, le Groupe SNCF ou le ministère chargé des Transports serait purement fortuite et ne saurait être imputable à EasyEEA."

	ineligibleManifesto = "EasyEEA revendique la simplicité d'utilisation de la réduction EEA pour tous ses bénéficiaires, ce qui devrait notamment impliquer l'abandon de l'obligation d'achat en gare des billets avec cette réduction (alors que le dossier à déposer auprès du ministère chargé des transports est à remplir sur demarches-simplifiees.fr), la diversification des modes d'achat (notamment via SNCF Connect et le 3635), l'élargissement du délai maximum pour réaliser le voyage (2 mois actuellement) ainsi que le retrait de l'achat par lots d'au moins 10 billets pour bénéficier de la réduction."
)

// Renderer stamps attestation documents onto the fixed PDF templates found
// in its static directory.
type Renderer struct {
	staticDir string
	log       *slog.Logger
}

// NewRenderer constructs a Renderer reading templates, fonts, and the logo
// from staticDir.
func NewRenderer(staticDir string, log *slog.Logger) *Renderer {
	return &Renderer{staticDir: staticDir, log: log}
}

// Render draws every page of every document into one output PDF, in the
// order the documents and pages were generated (eligible pages first, no
// re-reversal at this stage), and returns the document bytes.
func (r *Renderer) Render(docs []domain.AttestationDocument) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	for family, file := range map[string]string{
		"rows":       rowFontFile,
		"heading":    headingFontFile,
		"disclaimer": disclaimerFontFile,
	} {
		if err := pdf.AddTTFFont(family, filepath.Join(r.staticDir, file)); err != nil {
			return nil, fmt.Errorf("pdf.Renderer.Render: load font %s: %w", file, err)
		}
	}

	for _, doc := range docs {
		template := eligibleTemplate
		if doc.Kind == domain.DocumentIneligible {
			template = ineligibleTemplate
		}
		tpl := pdf.ImportPage(filepath.Join(r.staticDir, template), 1, "/MediaBox")

		for _, page := range doc.Pages {
			pdf.AddPage()
			pdf.UseImportedTemplate(tpl, 0, 0, gopdf.PageSizeA4.W, gopdf.PageSizeA4.H)

			if doc.Kind == domain.DocumentIneligible {
				if err := r.stampIneligibleBlocks(pdf); err != nil {
					return nil, fmt.Errorf("pdf.Renderer.Render: %w", err)
				}
			}
			if err := r.stampPage(pdf, doc.ValidityDate, page); err != nil {
				return nil, fmt.Errorf("pdf.Renderer.Render: %w", err)
			}
		}
	}

	return pdf.GetBytesPdf(), nil
}

// stampPage draws the validity header and up to 20 journey rows.
//
// Rows fill the template's table bottom-up: the row index formula shifts an
// under-full page downward so the block stays bottom-anchored, exactly as the
// reference templates expect.
func (r *Renderer) stampPage(pdf *gopdf.GoPdf, validity time.Time, page domain.AttestationPage) error {
	if err := pdf.SetFont("rows", "", rowFontSize); err != nil {
		return err
	}
	pdf.SetTextColor(0, 0, 0)

	header := "Date de début de validité : " + validity.Format("02/01/2006")
	if err := drawText(pdf, marginX, headerY, header); err != nil {
		return err
	}

	n := len(page.Rows)
	for i, row := range page.Rows {
		if i >= 20 {
			break
		}
		y := rowStartY - float64(i-1+(10-n))*rowHeight

		label, ok := classLabels[row.Class]
		if !ok {
			label = classLabels[domain.ClassSecond]
		}

		cells := []struct {
			x    float64
			text string
		}{
			{dateX, row.Date.Format("02/01/2006")},
			{originX, row.Origin},
			{destX, row.Destination},
			{timeX, fmt.Sprintf("%s (%s classe)", row.Departure.Format("15:04"), label)},
		}
		for _, c := range cells {
			if err := drawText(pdf, c.x, y, c.text); err != nil {
				return err
			}
		}
	}
	return nil
}

// stampIneligibleBlocks draws the logo and the fixed explanatory, warning,
// and disclaimer text of the ineligible-trips template. Paragraphs are
// wrapped with a measure-based word wrap; the printed wording, positions,
// and font sizes match the reference document.
func (r *Renderer) stampIneligibleBlocks(pdf *gopdf.GoPdf) error {
	logoH, err := r.drawLogo(pdf)
	if err != nil {
		// A missing logo degrades the page, it does not fail the dossier.
		r.log.Warn("attestation logo not drawn", "error", err)
		logoH = 0
	}

	pdf.SetTextColor(0, 0, 0)
	if err := pdf.SetFont("heading", "", 12); err != nil {
		return err
	}
	if err := drawParagraph(pdf, marginX, logoH+50, 15, ineligibleIntro); err != nil {
		return err
	}
	if err := drawParagraph(pdf, marginX, logoH+100, 15, ineligibleHowTo); err != nil {
		return err
	}

	pdf.SetTextColor(255, 0, 0)
	if err := drawParagraph(pdf, marginX, logoH+150, 15, ineligibleWarning); err != nil {
		return err
	}
	pdf.SetTextColor(0, 0, 0)

	if err := pdf.SetFont("disclaimer", "", 6); err != nil {
		return err
	}
	pageH := gopdf.PageSizeA4.H
	if err := drawParagraph(pdf, marginX, pageH-70, 7, ineligibleLiability); err != nil {
		return err
	}
	return drawParagraph(pdf, marginX, pageH-60, 7, ineligibleManifesto)
}

// drawLogo stamps the EasyEEA logo at the top-left corner and returns its
// drawn height.
func (r *Renderer) drawLogo(pdf *gopdf.GoPdf) (float64, error) {
	path := filepath.Join(r.staticDir, logoFile)

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	cfg, err := png.DecodeConfig(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", logoFile, err)
	}

	w := float64(cfg.Width) * logoScale
	h := float64(cfg.Height) * logoScale
	if err := pdf.Image(path, 50, 50, &gopdf.Rect{W: w, H: h}); err != nil {
		return 0, err
	}
	return h, nil
}

// drawText writes a single line at (x, y).
func drawText(pdf *gopdf.GoPdf, x, y float64, text string) error {
	pdf.SetXY(x, y)
	return pdf.Cell(nil, text)
}

// drawParagraph word-wraps text to the fixed block width and writes the lines
// downward from (x, y) with the given line height.
func drawParagraph(pdf *gopdf.GoPdf, x, y, lineHeight float64, text string) error {
	lines, err := pdf.SplitTextWithWordWrap(text, textWidth)
	if err != nil {
		return err
	}
	for i, line := range lines {
		if err := drawText(pdf, x, y+float64(i)*lineHeight, line); err != nil {
			return err
		}
	}
	return nil
}
