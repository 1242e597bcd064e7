// Package testdb builds seeded in-memory SQLite databases for package tests.
package testdb

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/gp-wales/internal/db"
	"github.com/gp-wales/internal/practice"
)

// New returns an empty schema on a private in-memory database. The pool is
// pinned to one connection because each SQLite :memory: connection is its own
// database.
func New(t testing.TB) *db.Connection {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	conn := db.Open(sqlDB, "sqlite")
	if err := conn.CreateSchema(context.Background()); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return conn
}

// Practices inserts address rows.
func Practices(t testing.TB, conn *db.Connection, ps ...practice.Practice) {
	t.Helper()
	for _, p := range ps {
		_, err := conn.DB.Exec(`INSERT INTO address (practiceid, name, street, area, posttown, county, postcode)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Street, p.Area, p.PostTown, p.County, p.Postcode)
		if err != nil {
			t.Fatalf("insert practice %s: %v", p.ID, err)
		}
	}
}

// Prescriptions inserts prescribing rows.
func Prescriptions(t testing.TB, conn *db.Connection, rs ...practice.PrescriptionRecord) {
	t.Helper()
	for _, r := range rs {
		_, err := conn.DB.Exec(`INSERT INTO gp_data_up_to_2015
			(practiceid, bnfcode, bnfname, items, nic, actcost, quantity, period)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.PracticeID, r.BNFCode, r.BNFName, r.Items, r.NIC, r.ActCost, r.Quantity, r.Period)
		if err != nil {
			t.Fatalf("insert prescription %s/%s: %v", r.PracticeID, r.BNFCode, err)
		}
	}
}

// Achievements inserts QOF rows.
func Achievements(t testing.TB, conn *db.Connection, rs ...practice.AchievementRecord) {
	t.Helper()
	for _, r := range rs {
		_, err := conn.DB.Exec(`INSERT INTO qof_achievement
			(orgcode, indicator, numerator, denominator, ratio, centile)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.OrgCode, r.Indicator, r.Numerator, r.Denominator, r.Ratio, r.Centile)
		if err != nil {
			t.Fatalf("insert achievement %s/%s: %v", r.OrgCode, r.Indicator, err)
		}
	}
}

// Rx is shorthand for a prescribing row with only the fields the analyses read.
func Rx(practiceID, bnfCode, bnfName string, items int64) practice.PrescriptionRecord {
	return practice.PrescriptionRecord{
		PracticeID: practiceID,
		BNFCode:    bnfCode,
		BNFName:    bnfName,
		Items:      items,
		Period:     201501,
	}
}

// QOF is shorthand for an achievement row with a ratio.
func QOF(orgCode, indicator string, ratio float64) practice.AchievementRecord {
	return practice.AchievementRecord{OrgCode: orgCode, Indicator: indicator, Ratio: ratio}
}

// Seed loads a small fixed dataset of five practices across four authorities.
func Seed(t testing.TB, conn *db.Connection) {
	t.Helper()
	Practices(t, conn,
		practice.Practice{ID: "W00001", Name: "Bridge Street Surgery", Street: "1 Bridge St", PostTown: "CARDIFF", County: "South Glamorgan", Postcode: "CF14 1AB"},
		practice.Practice{ID: "W00002", Name: "Ystrad Mynach Health Centre", PostTown: "YSTRAD MYNACH", County: "Gwent", Postcode: "NP11 5GX"},
		practice.Practice{ID: "W00003", Name: "Cwmbran Village Surgery", PostTown: "CWMBRAN", County: "Gwent", Postcode: "NP44 3AA"},
		practice.Practice{ID: "W00004", Name: "Penarth Medical Centre", PostTown: "PENARTH", County: "South Glamorgan", Postcode: "CF64 1AA"},
		practice.Practice{ID: "W00005", Name: "Second Cardiff Practice", PostTown: "CARDIFF", County: "South Glamorgan", Postcode: "CF141AB"},
		practice.Practice{ID: "X99999", Name: "Nowhere Clinic", PostTown: "NOWHERE", County: "Dyfed", Postcode: "ZZ1 1ZZ"},
	)
	Prescriptions(t, conn,
		Rx("W00001", "0205051R0AAAAAA", "Ramipril_Cap 2.5mg", 120),
		Rx("W00001", "0212000B0AAABAB", "Atorvastatin_Tab 20mg", 200),
		Rx("W00001", "0407010H0AAAMAM", "Paracet_Tab 500mg", 90),
		Rx("W00001", "0103050P0AAAAAA", "Omeprazole_Cap E/C 20mg", 60),
		Rx("W00002", "0205051R0AAAAAA", "Ramipril_Cap 2.5mg", 40),
		Rx("W00002", "0407010H0AAAMAM", "Paracet_Tab 500mg", 60),
		Rx("W00003", "0205052N0AAAAAA", "Losartan Pot_Tab 50mg", 10),
		Rx("W00003", "0407010H0AAAMAM", "Paracet_Tab 500mg", 90),
		Rx("W00003", "0103050P0AAAAAA", "Omeprazole_Cap E/C 20mg", 50),
		Rx("W00004", "0205051R0AAAAAA", "Ramipril_Cap 2.5mg", 30),
		Rx("W00005", "0205051R0AAAAAA", "Ramipril_Cap 2.5mg", 50),
		Rx("W00005", "0407010H0AAAMAM", "Paracet_Tab 500mg", 50),
	)
	Achievements(t, conn,
		QOF("W00001", practice.IndicatorHypertension, 0.16),
		QOF("W00002", practice.IndicatorHypertension, 0.12),
		QOF("W00003", practice.IndicatorHypertension, 0.10),
		QOF("W00004", practice.IndicatorHypertension, 0.14),
		QOF("W00005", practice.IndicatorHypertension, 0.13),
		QOF("W00001", practice.IndicatorObesity, 0.08),
		QOF("W00002", practice.IndicatorObesity, 0.11),
		QOF("W00003", practice.IndicatorObesity, 0.12),
		QOF("W00004", practice.IndicatorObesity, 0.09),
		QOF("W00005", practice.IndicatorObesity, 0.10),
		QOF("W00001", practice.IndicatorCHD, 0.04),
		QOF("W00002", practice.IndicatorCHD, 0.03),
		QOF("W00003", practice.IndicatorCHD, 0.02),
		QOF("W00004", practice.IndicatorCHD, 0.05),
	)
}
