package catalog

import "github.com/kanthai/launchpad/internal/models"

// def builds a TMP-GENERAL task definition.
func def(code, name, phase, role string, offset, duration int, dependsOn, input string) models.TemplateTask {
	return models.TemplateTask{
		TemplateID:       GeneralTemplateID,
		TaskCode:         code,
		TaskName:         name,
		Phase:            phase,
		DefaultOwnerRole: role,
		OffsetDays:       offset,
		DurationDays:     duration,
		DependsOn:        dependsOn,
		InputType:        input,
	}
}

// generalTasks is the General Launch checklist. Offsets are days relative
// to the product's go-live date; negatives start before launch.
func generalTasks() []models.TemplateTask {
	return []models.TemplateTask{
		// Order Sample Testing
		def("OST1", "PI Sample Order", "Order Sample Testing", models.RoleOps, -40, 5, "", models.InputFile),
		def("OST2", "Payment", "Order Sample Testing", models.RoleFinance, -35, 2, "OST1", models.InputFile),
		def("OST3", "Shipment", "Order Sample Testing", models.RoleOps, -33, 7, "OST2", models.InputStandard),
		def("OST4", "Testing", "Order Sample Testing", models.RolePM, -26, 5, "OST3", models.InputStandard),

		// Import Checking
		def("IMP1", "HS-Code Checking", "Import Checking", models.RoleOps, -25, 2, "", models.InputNote),
		def("IMP2", "FDA", "Import Checking", models.RoleOps, -23, 10, "IMP1", models.InputStandard),
		def("IMP3", "TISI", "Import Checking", models.RoleOps, -23, 10, "IMP1", models.InputStandard),
		def("IMP4", "NBTC", "Import Checking", models.RoleOps, -23, 10, "IMP1", models.InputStandard),
		def("IMP5", "DIT", "Import Checking", models.RoleOps, -23, 10, "IMP1", models.InputStandard),

		// Ordering
		def("ORD1", "Ordering and MOQ", "Ordering", models.RoleOps, -30, 2, "OST4", models.InputNote),
		def("ORD2", "PI Ordering", "Ordering", models.RoleOps, -28, 2, "ORD1", models.InputFile),
		def("ORD3", "Payment Deposit", "Ordering", models.RoleFinance, -26, 2, "ORD2", models.InputFile),
		def("ORD4", "Payment Full", "Ordering", models.RoleFinance, -10, 2, "ORD3", models.InputFile),

		// Product Artwork
		def("ART1", "Label", "Product Artwork", models.RoleMarketing, -25, 5, "OST4", models.InputFile),
		def("ART2", "Inner Box", "Product Artwork", models.RoleMarketing, -25, 5, "OST4", models.InputFile),
		def("ART3", "Outer Box", "Product Artwork", models.RoleMarketing, -25, 5, "OST4", models.InputFile),
		def("ART4", "Manual", "Product Artwork", models.RoleMarketing, -20, 5, "OST4", models.InputFile),
		def("ART5", "Warranty", "Product Artwork", models.RoleMarketing, -20, 5, "OST4", models.InputFile),

		// Shipment
		def("SHP1", "ETA", "Shipment", models.RoleOps, -15, 1, "ORD3", models.InputStandard),
		def("SHP2", "ETD", "Shipment", models.RoleOps, -14, 1, "SHP1", models.InputStandard),
		def("SHP3", "Arrived to inventory", "Shipment", models.RoleOps, -2, 1, "SHP2", models.InputStandard),

		// Take Sample for KOL
		def("KOL1", "Sample Arrival (KOL)", "Take Sample for KOL", models.RoleMarketing, -2, 1, "SHP3", models.InputStandard),

		// Quality and Claim
		def("QC1", "Method Claim", "Quality and Claim", models.RoleAfterService, -10, 5, "", models.InputNote),

		// Content KOL
		def("CNT1", "Posting KOL", "Content KOL", models.RoleMarketing, 5, 10, "KOL1", models.InputStandard),

		// Marketing Content
		def("MKT1", "Feature Content", "Marketing Content", models.RoleMarketing, -10, 5, "OST4", models.InputFile),
		def("MKT2", "Video Launch", "Marketing Content", models.RoleMarketing, -5, 5, "MKT1", models.InputFile),
		def("MKT3", "Video Using", "Marketing Content", models.RoleMarketing, -5, 5, "MKT1", models.InputFile),

		// Product Detail
		def("DET1", "Key Feature", "Product Detail", models.RolePM, -30, 5, "OST4", models.InputNote),
		def("DET2", "Target Customer", "Product Detail", models.RolePM, -30, 5, "OST4", models.InputNote),
		def("DET3", "SpecSheet", "Product Detail", models.RolePM, -30, 5, "OST4", models.InputNote),
		def("DET4", "In-Box items", "Product Detail", models.RolePM, -20, 2, "OST4", models.InputNote),
		def("DET5", "Box Dimension", "Product Detail", models.RolePM, -20, 1, "ART2", models.InputNote),
	}
}
