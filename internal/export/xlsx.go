package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

// WriteWorkbook writes a two-sheet Excel workbook: a Companies sheet with
// one row per company and a People sheet joining every person to their
// company via a stable companyId (C001, C002, ...).
func WriteWorkbook(path string, companies []model.Company) error {
	file := xlsx.NewFile()

	companiesSheet, err := file.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "export: add companies sheet")
	}
	peopleSheet, err := file.AddSheet("People")
	if err != nil {
		return eris.Wrap(err, "export: add people sheet")
	}

	addRow(companiesSheet, "companyId", "name", "location", "industry", "description", "founded")
	addRow(peopleSheet, "companyId", "companyName", "name", "role", "email", "phoneNumber", "linkedin", "apolloId")

	people := 0
	for i, company := range companies {
		companyID := fmt.Sprintf("C%03d", i+1)

		addRow(companiesSheet,
			companyID,
			company.Name,
			deref(company.Location),
			deref(company.Industry),
			deref(company.Description),
			deref(company.Founded),
		)

		for _, person := range company.People {
			addRow(peopleSheet,
				companyID,
				company.Name,
				person.Name,
				person.Role,
				deref(person.Email),
				deref(person.PhoneNumber),
				deref(person.LinkedinURL),
				deref(person.ApolloID),
			)
			people++
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}

	zap.L().Info("workbook written",
		zap.String("path", path),
		zap.Int("companies", len(companies)),
		zap.Int("people", people),
	)
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
