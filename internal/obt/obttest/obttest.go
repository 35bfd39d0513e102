// Package obttest holds a small three-sheet workbook used across tests.
package obttest

import (
	"github.com/sells-group/obt-cli/internal/fetcher/fetchertest"
)

// CarrierRows is the carrier report, header first.
var CarrierRows = [][]string{
	{"FullName", "Phone", "Carrier", "Issuer_Assigned_ID", "agent_name"},
	{"Mary Smith", "5551110000", "Ambetter", "POL1", "Agent A"},
	{"JOSE GARCIA", "5552220000.0", "Oscar", "POL2", "Agent B"},
	{"CHER", "5553330000", "BCBS", "POL3", "Agent C"},
	{"NO MATCH PERSON", "5550000000", "Carrier X", "POL4", "Agent D"},
}

// SalesRows is the sherpa report, header first. agent_email is not part of
// the sales projection and gets dropped. Mary's state and Jose's language
// and application id disagree with the lead report.
var SalesRows = [][]string{
	{"first_name", "last_name", "state", "phone", "email", "preferred_language", "ffm_app_id", "ffm_subscriber_id",
		"issuer_assigned_policy_id", "issuer_assigned_subscriber_id", "issuer_assigned_primary_member_id", "agent_email"},
	{"mary", "smith", "GA", "5551110000", "mary@example.com", "English", "1001", "9001", "IP1", "IS1", "IM1", "a@x"},
	{"m", "s", "NY", "5559999999", "wrong@example.com", "English", "1001", "9002", "IP2", "IS2", "IM2", "b@x"},
	{"jose", "garcia", "CA", "5552220000", "jose@example.com", "English", "2002", "9003", "IP3", "IS3", "IM3", "c@x"},
	{"jose", "garcia", "CA", "5552220000", "jose@example.com", "English", "2002", "9003", "IP3", "IS3", "IM3", "c@x"},
}

// LeadRows is the TLD report, header first. The second Mary row repeats the
// uniqueness key and gets dropped.
var LeadRows = [][]string{
	{"lead_id", "policy_id", "lead_first_name", "lead_last_name", "lead_phone", "application_number",
		"lead_state", "lead_language_name", "lead_vendor_name", "date_converted", "policy_type", "carrier_name"},
	{"L1", "P1", "Mary", "Smith", "5551110000.0", "1001", "TX", "en_US", "VendA", "2024-01-02", "ACA", "Ambetter"},
	{"L1", "P1", "mary", "smith", "5551110000", "1001", "OK", "en_US", "VendA", "2024-01-02", "ACA", "Ambetter"},
	{"L2", "P2", "Jose", "Garcia", "5552220000", "2999", "", "es_MX", "VendB", "2024-01-03", "ACA", "Oscar"},
	{"L3", "P3", "", "Cher", "5553330000", "3003", "FL", "fr_FR", "VendC", "2024-01-04", "ACA", "BCBS"},
}

// FinalRecords is the expected One-Big-Table for the rows above. Lead state
// and language win over sales; the sales application id wins over the lead's.
var FinalRecords = [][]string{
	{"MARY", "SMITH", "5551110000", "mary@example.com", "L1", "Ambetter", "POL1", "1001", "TX", "English", "Agent A", "VendA", "2024-01-02"},
	{"JOSE", "GARCIA", "5552220000", "jose@example.com", "L2", "Oscar", "POL2", "2002", "CA", "Spanish", "Agent B", "VendB", "2024-01-03"},
	{"CHER", "", "5553330000", "", "L3", "BCBS", "POL3", "3003", "FL", "", "Agent C", "VendC", "2024-01-04"},
	{"NO", "MATCH PERSON", "5550000000", "", "", "Carrier X", "POL4", "", "", "", "Agent D", "", ""},
}

// Sheets returns the workbook in carrier, sales, lead order.
func Sheets() []fetchertest.Sheet {
	return []fetchertest.Sheet{
		{Name: "Carrier Report", Rows: CarrierRows},
		{Name: "Sherpa Report", Rows: SalesRows},
		{Name: "TLD Report", Rows: LeadRows},
	}
}
