package ownership

import (
	"mediquip/internal/domain/models"
)

// Per-resource chains. Each function is a pure description of the walk
// from one collection up to the root client account; the access layer
// never needs resource-specific traversal code beyond these.

// HeadquarterChain resolves a headquarter to its client account.
func HeadquarterChain() Chain {
	return Chain{
		{From: models.CollUsers, LocalField: "clientId", As: "client"},
	}
}

// OfficeChain walks office -> headquarter -> client.
func OfficeChain() Chain {
	return Chain{
		{From: models.CollHeadquarters, LocalField: "headquarterId", As: "headquarter"},
		{From: models.CollUsers, LocalField: "headquarter.clientId", As: "client"},
	}
}

// EquipmentChain walks equipment -> office -> headquarter -> client.
func EquipmentChain() Chain {
	return Chain{
		{From: models.CollOffices, LocalField: "officeId", As: "office"},
		{From: models.CollHeadquarters, LocalField: "office.headquarterId", As: "headquarter"},
		{From: models.CollUsers, LocalField: "headquarter.clientId", As: "client"},
	}
}

// ServiceRequestChain walks request -> equipment -> office ->
// headquarter -> client.
func ServiceRequestChain() Chain {
	return Chain{
		{From: models.CollEquipments, LocalField: "equipmentId", As: "equipment"},
		{From: models.CollOffices, LocalField: "equipment.officeId", As: "office"},
		{From: models.CollHeadquarters, LocalField: "office.headquarterId", As: "headquarter"},
		{From: models.CollUsers, LocalField: "headquarter.clientId", As: "client"},
	}
}

// ActivityChain walks activity -> service request -> equipment ->
// office -> headquarter -> client.
func ActivityChain() Chain {
	return append(Chain{
		{From: models.CollServiceRequests, LocalField: "serviceRequestId", As: "serviceRequest"},
	}, rebase(ServiceRequestChain(), "serviceRequest")...)
}

// MaintenanceChain is the same depth-five walk as ActivityChain;
// maintenances also hang off service requests.
func MaintenanceChain() Chain {
	return append(Chain{
		{From: models.CollServiceRequests, LocalField: "serviceRequestId", As: "serviceRequest"},
	}, rebase(ServiceRequestChain(), "serviceRequest")...)
}

// ScheduleChain walks schedule -> equipment -> office -> headquarter
// -> client.
func ScheduleChain() Chain {
	return append(Chain{
		{From: models.CollEquipments, LocalField: "equipmentId", As: "equipment"},
	}, rebase(EquipmentChain(), "equipment")...)
}

// SignatureChain walks signature -> headquarter -> client. Signatures
// attach to headquarters directly.
func SignatureChain() Chain {
	return Chain{
		{From: models.CollHeadquarters, LocalField: "headquarterId", As: "headquarter"},
		{From: models.CollUsers, LocalField: "headquarter.clientId", As: "client"},
	}
}

// rebase shifts a chain's first local field under the given embedded
// prefix so a chain can extend another one level deeper. Only the
// first hop needs the prefix; later hops already address their own
// embedded fields.
func rebase(c Chain, prefix string) Chain {
	out := make(Chain, len(c))
	copy(out, c)
	out[0].LocalField = prefix + "." + out[0].LocalField
	return out
}
