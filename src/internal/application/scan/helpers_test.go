package scan

import (
	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

func ledgerFilterFor(email user.Email) ledger.ScanFilter {
	return ledger.ScanFilter{ScannerEmail: email}
}
