package mailer

import (
	"fmt"

	"dpstore-backend/internal/models"
	"dpstore-backend/internal/util"
)

// OrderReceived builds the order-confirmation mail.
func OrderReceived(ev *models.OrderCreatedEvent) (subject, html string) {
	subject = fmt.Sprintf("Pesanan DPStore Anda #%s Telah Diterima", ev.ExternalID)
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; color: #333;">
			<h1 style="color: #5a3ea1;">Halo %s,</h1>
			<p>Terima kasih telah melakukan pemesanan di DPStore. Pesanan Anda telah kami terima dan sedang menunggu pembayaran.</p>
			<h3 style="border-bottom: 2px solid #eee; padding-bottom: 5px;">Detail Pesanan</h3>
			<p><strong>ID Pesanan:</strong> %s</p>
			<p><strong>Item:</strong> %s (Qty: %d)</p>
			<p><strong>User Game ID:</strong> %s</p>
			<p><strong>Metode Pembayaran:</strong> %s</p>
			<h3 style="margin-top: 20px;">Total Pembayaran: <span style="color: #eab308;">%s</span></h3>
			<p>Silakan selesaikan pembayaran Anda agar pesanan dapat segera kami proses.</p>
			<br>
			<p>Salam,<br>Tim DPStore</p>
		</div>`,
		ev.RecipientName, ev.ExternalID, ev.ProductName, ev.Quantity,
		ev.UserGameID, ev.PaymentMethod, util.FormatRupiah(ev.TotalPrice))
	return subject, html
}

// Welcome builds the registration mail.
func Welcome(ev *models.UserRegisteredEvent) (subject, html string) {
	subject = "Selamat Datang di DPStore!"
	html = fmt.Sprintf(`<h1>Halo %s,</h1><p>Terima kasih telah mendaftar di DPStore! Akun Anda telah berhasil dibuat.</p>`,
		ev.RecipientName)
	return subject, html
}

// PasswordChanged builds the password-change notice.
func PasswordChanged(ev *models.PasswordChangedEvent) (subject, html string) {
	subject = "Password DPStore Anda Telah Diubah"
	html = fmt.Sprintf(`<p>Halo %s, password Anda berhasil diubah. Jika ini bukan Anda, segera hubungi kami.</p>`,
		ev.RecipientName)
	return subject, html
}

// PasswordResetLink builds the forgot-password mail.
func PasswordResetLink(ev *models.PasswordResetLinkEvent) (subject, html string) {
	subject = "Reset Kata Sandi Akun DPStore Anda"
	html = fmt.Sprintf(`
		<h1>Halo %s,</h1>
		<p>Anda menerima email ini karena Anda (atau orang lain) telah meminta untuk mereset kata sandi akun DPStore Anda.</p>
		<p>Silakan klik tautan di bawah ini untuk menyelesaikan prosesnya dalam waktu satu jam:</p>
		<p><a href="%s" style="color: #eab308; text-decoration: none; font-weight: bold;">Reset Kata Sandi Anda</a></p>
		<p>Jika Anda tidak meminta ini, abaikan saja email ini.</p>
		<br><p>Salam,</p><p>Tim DPStore</p>`,
		ev.RecipientName, ev.ResetURL)
	return subject, html
}

// PasswordResetDone builds the reset confirmation mail.
func PasswordResetDone(ev *models.PasswordResetDoneEvent) (subject, html string) {
	subject = "Kata Sandi DPStore Anda Telah Diubah"
	html = fmt.Sprintf(`<p>Halo %s,</p><p>Ini adalah konfirmasi bahwa kata sandi untuk akun Anda telah berhasil diubah. Jika Anda tidak melakukan perubahan ini, segera hubungi dukungan kami.</p>`,
		ev.RecipientName)
	return subject, html
}
