package workflow

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"opms/m/domain"
)

// PrescriptionService owns prescription issuance and the by-customer view.
type PrescriptionService struct {
	db *sqlx.DB
}

// NewPrescriptionService constructs a PrescriptionService.
func NewPrescriptionService(db *sqlx.DB) *PrescriptionService {
	return &PrescriptionService{db: db}
}

// PrescribedDrug is one drug line on a prescription.
type PrescribedDrug struct {
	DrugName    string `db:"drug_name"`
	Quantity    int64  `db:"prescribed_quantity"`
	RefillLimit int64  `db:"refill_limit"`
}

// PrescriptionInput carries everything a doctor enters for a new
// prescription. Prescriptions never touch medicine stock.
type PrescriptionInput struct {
	CustomerSSN string
	Date        string
	Note        string
	Drugs       []PrescribedDrug
}

// Issue creates a prescription bound to the session doctor, with its drug
// line items, inside one transaction. Returns the new prescription ID.
func (s *PrescriptionService) Issue(session domain.Session, in PrescriptionInput) (int64, error) {
	if session.Role != domain.RoleDoctor {
		return 0, ErrDoctorRequired
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, errors.Wrap(err, "begin prescription")
	}
	defer tx.Rollback()

	var prescriptionID int64
	err = tx.QueryRowx(`INSERT INTO prescriptions (prescribed_date, note, customer_ssn, doctor_id)
        VALUES (?, ?, ?, ?) RETURNING prescription_id`,
		in.Date, in.Note, in.CustomerSSN, session.DoctorID).Scan(&prescriptionID)
	if err != nil {
		return 0, errors.Wrap(err, "insert prescription")
	}

	for _, drug := range in.Drugs {
		if _, err := tx.Exec(`INSERT INTO prescribed_drugs (prescription_id, drug_name, prescribed_quantity, refill_limit)
            VALUES (?, ?, ?, ?)`,
			prescriptionID, drug.DrugName, drug.Quantity, drug.RefillLimit); err != nil {
			return 0, errors.Wrapf(err, "insert prescribed drug %s", drug.DrugName)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit prescription")
	}
	return prescriptionID, nil
}

// PrescriptionView is one prescription header with its doctor's name.
type PrescriptionView struct {
	PrescriptionID int64  `db:"prescription_id"`
	PrescribedDate string `db:"prescribed_date"`
	Note           string `db:"note"`
	DoctorName     string `db:"doctor_name"`
}

// ByCustomer returns one row per prescription for the customer, regardless
// of how many drug lines each prescription carries.
func (s *PrescriptionService) ByCustomer(ssn string) ([]PrescriptionView, error) {
	var views []PrescriptionView
	err := s.db.Select(&views, `SELECT p.prescription_id, p.prescribed_date, p.note,
            d.first_name || ' ' || d.last_name AS doctor_name
        FROM prescriptions p JOIN doctors d ON p.doctor_id = d.doctor_id
        WHERE p.customer_ssn = ? ORDER BY p.prescription_id`, ssn)
	if err != nil {
		return nil, errors.Wrap(err, "list prescriptions")
	}
	return views, nil
}

// DrugsFor returns the drug lines of one prescription.
func (s *PrescriptionService) DrugsFor(prescriptionID int64) ([]PrescribedDrug, error) {
	var drugs []PrescribedDrug
	err := s.db.Select(&drugs, `SELECT drug_name, prescribed_quantity, refill_limit
        FROM prescribed_drugs WHERE prescription_id = ? ORDER BY drug_name`, prescriptionID)
	if err != nil {
		return nil, errors.Wrap(err, "list prescribed drugs")
	}
	return drugs, nil
}
