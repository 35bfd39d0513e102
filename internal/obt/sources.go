package obt

import (
	"github.com/sells-group/obt-cli/internal/match"
	"github.com/sells-group/obt-cli/internal/normalize"
)

// Source names, also used for the cleaned export files.
const (
	SourceCarrier = "carrier_report"
	SourceSales   = "sherpa_report"
	SourceLead    = "tld_report"
)

// Sheet positions in the input workbook.
const (
	SheetCarrier = iota
	SheetSales
	SheetLead
	sheetCount
)

// Lead (TLD) report columns.
const (
	LeadID            = "lead_id"
	LeadPolicyID      = "policy_id"
	LeadFirstName     = "lead_first_name"
	LeadLastName      = "lead_last_name"
	LeadPhone         = "lead_phone"
	LeadApplication   = "application_number"
	LeadState         = "lead_state"
	LeadLanguage      = "lead_language_name"
	LeadVendor        = "lead_vendor_name"
	LeadDateConverted = "date_converted"
	LeadPolicyType    = "policy_type"
)

// Sales (sherpa) report columns.
const (
	SalesFirstName           = "first_name"
	SalesLastName            = "last_name"
	SalesState               = "state"
	SalesPhone               = "phone"
	SalesEmail               = "email"
	SalesLanguage            = "preferred_language"
	SalesApplication         = "ffm_app_id"
	SalesSubscriber          = "ffm_subscriber_id"
	SalesPolicyID            = "issuer_assigned_policy_id"
	SalesIssuerSubscriber    = "issuer_assigned_subscriber_id"
	SalesIssuerPrimaryMember = "issuer_assigned_primary_member_id"
)

// Carrier report columns.
const (
	CarrierFullName = "FullName"
	CarrierPhone    = "Phone"
	CarrierName     = "Carrier"
	CarrierPolicyID = "Issuer_Assigned_ID"
	CarrierAgent    = "agent_name"
)

// Columns of the reconciled lead/sales table.
const (
	colFirstName = "first_name"
	colLastName  = "last_name"
	colPhone     = "phone"
	colVendor    = "vendor_name"
	colSoldDate  = "Sold_Date"
	colLanguage  = "language"
	colState     = "state"
	colFullName  = "full_name"
)

// FinalColumns is the ordered schema of the One-Big-Table.
var FinalColumns = []string{
	"First_Name",
	"Last_Name",
	"Phone",
	"Email",
	"Lead_ID",
	"Carrier_Name",
	"Policy_ID",
	"FFM_Application_ID",
	"State",
	"Language",
	"Agent_Name",
	"Vendor_Name",
	"Sold_Date",
}

var leadSchema = normalize.Schema{
	Source: SourceLead,
	Columns: []normalize.Column{
		{Name: LeadID, Role: normalize.RoleText},
		{Name: LeadPolicyID, Role: normalize.RoleText},
		{Name: LeadFirstName, Role: normalize.RoleUpper},
		{Name: LeadLastName, Role: normalize.RoleUpper},
		{Name: LeadPhone, Role: normalize.RoleIntegral},
		{Name: LeadApplication, Role: normalize.RoleIntegral},
		{Name: LeadState, Role: normalize.RoleText},
		{Name: LeadLanguage, Role: normalize.RoleLanguage},
		{Name: LeadVendor, Role: normalize.RoleText},
		{Name: LeadDateConverted, Role: normalize.RoleText},
		{Name: LeadPolicyType, Role: normalize.RoleDrop},
	},
}

var leadKeys = []string{LeadFirstName, LeadLastName, LeadID, LeadPolicyID}

var salesSchema = normalize.Schema{
	Source:  SourceSales,
	Project: true,
	Columns: []normalize.Column{
		{Name: SalesFirstName, Role: normalize.RoleUpper},
		{Name: SalesLastName, Role: normalize.RoleUpper},
		{Name: SalesState, Role: normalize.RoleText},
		{Name: SalesPhone, Role: normalize.RoleIntegral},
		{Name: SalesEmail, Role: normalize.RoleText},
		{Name: SalesLanguage, Role: normalize.RoleLanguageLabel},
		{Name: SalesApplication, Role: normalize.RoleIntegral},
		{Name: SalesSubscriber, Role: normalize.RoleIntegral},
		{Name: SalesPolicyID, Role: normalize.RoleText},
		{Name: SalesIssuerSubscriber, Role: normalize.RoleText},
		{Name: SalesIssuerPrimaryMember, Role: normalize.RoleText},
	},
}

var carrierSchema = normalize.Schema{
	Source: SourceCarrier,
	Columns: []normalize.Column{
		{Name: CarrierFullName, Role: normalize.RoleUpper},
		{Name: CarrierPhone, Role: normalize.RoleIntegral},
		{Name: CarrierName, Role: normalize.RoleText},
		{Name: CarrierPolicyID, Role: normalize.RoleText},
		{Name: CarrierAgent, Role: normalize.RoleText},
	},
}

// Lead ↔ sales strategies, highest priority first.
var leadSalesStrategies = []match.Strategy{
	{
		Name: "phone+application",
		Keys: []match.KeyPair{
			{Left: LeadPhone, Right: SalesPhone},
			{Left: LeadApplication, Right: SalesApplication},
		},
	},
	{
		Name:     "application",
		Keys:     []match.KeyPair{{Left: LeadApplication, Right: SalesApplication}},
		Distinct: true,
	},
	{
		Name:     "phone",
		Keys:     []match.KeyPair{{Left: LeadPhone, Right: SalesPhone}},
		Distinct: true,
	},
}

var carrierStrategies = []match.Strategy{
	{
		Name: "name+phone",
		Keys: []match.KeyPair{
			{Left: CarrierFullName, Right: colFullName},
			{Left: CarrierPhone, Right: colPhone},
		},
		Distinct: true,
	},
}
