package tickets

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"luxetickets/models"
)

func rupees(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(0)
}

// PDF renders a one page printable ticket for booking.
func (r *Renderer) PDF(booking models.Booking, holder models.User) ([]byte, error) {
	qrPNG, err := r.QRCode(booking)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("LuxeTickets "+booking.ID, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "LuxeTickets E-Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Booking ID: %s", booking.ID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Ticket code: %s", booking.QRCode))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Name: %s", holder.Name)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", strings.ToUpper(string(booking.Status))))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Booked on: %s", booking.BookingDate.Format("02 Jan 2006 15:04")))
	pdf.Ln(10)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 45, 45, false, imageOpts, 0, "")

	for _, item := range booking.Items {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, tr(item.EventTitle))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s, %s at %s", item.Venue, item.EventDate, item.EventTime)))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("%s x%d: %s", strings.ToUpper(string(item.SeatTier)), item.Quantity, strings.Join(item.Seats, ", ")))
		pdf.Ln(6)
		pdf.Cell(0, 6, rupees(item.TotalPrice))
		pdf.Ln(9)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Subtotal: %s", rupees(booking.TotalAmount)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Convenience fee: %s", rupees(booking.ConvenienceFee)))
	pdf.Ln(6)
	if booking.PromoDiscount.IsPositive() {
		pdf.Cell(0, 6, fmt.Sprintf("Promo discount: -%s", rupees(booking.PromoDiscount)))
		pdf.Ln(6)
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total paid (%s): %s", booking.PaymentMethod, rupees(booking.FinalAmount)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}
