package ownership

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChainShapes(t *testing.T) {
	tests := []struct {
		name       string
		chain      Chain
		wantDepth  int
		wantFirst  string // first hop local field
		wantJoins  []string
		wantOwner  string
	}{
		{
			name:      "headquarter resolves directly to client",
			chain:     HeadquarterChain(),
			wantDepth: 1,
			wantFirst: "clientId",
			wantJoins: []string{"users"},
			wantOwner: "client._id",
		},
		{
			name:      "office walks through headquarter",
			chain:     OfficeChain(),
			wantDepth: 2,
			wantFirst: "headquarterId",
			wantJoins: []string{"headquarters", "users"},
			wantOwner: "client._id",
		},
		{
			name:      "equipment walks office and headquarter",
			chain:     EquipmentChain(),
			wantDepth: 3,
			wantFirst: "officeId",
			wantJoins: []string{"offices", "headquarters", "users"},
			wantOwner: "client._id",
		},
		{
			name:      "service request walks four levels",
			chain:     ServiceRequestChain(),
			wantDepth: 4,
			wantFirst: "equipmentId",
			wantJoins: []string{"equipments", "offices", "headquarters", "users"},
			wantOwner: "client._id",
		},
		{
			name:      "activity walks five levels",
			chain:     ActivityChain(),
			wantDepth: 5,
			wantFirst: "serviceRequestId",
			wantJoins: []string{"servicerequests", "equipments", "offices", "headquarters", "users"},
			wantOwner: "client._id",
		},
		{
			name:      "maintenance walks five levels",
			chain:     MaintenanceChain(),
			wantDepth: 5,
			wantFirst: "serviceRequestId",
			wantJoins: []string{"servicerequests", "equipments", "offices", "headquarters", "users"},
			wantOwner: "client._id",
		},
		{
			name:      "schedule walks through equipment",
			chain:     ScheduleChain(),
			wantDepth: 4,
			wantFirst: "equipmentId",
			wantJoins: []string{"equipments", "offices", "headquarters", "users"},
			wantOwner: "client._id",
		},
		{
			name:      "signature attaches to headquarter",
			chain:     SignatureChain(),
			wantDepth: 2,
			wantFirst: "headquarterId",
			wantJoins: []string{"headquarters", "users"},
			wantOwner: "client._id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.chain) != tt.wantDepth {
				t.Fatalf("depth = %d, want %d", len(tt.chain), tt.wantDepth)
			}
			if tt.chain[0].LocalField != tt.wantFirst {
				t.Errorf("first local field = %s, want %s", tt.chain[0].LocalField, tt.wantFirst)
			}
			for i, hop := range tt.chain {
				if hop.From != tt.wantJoins[i] {
					t.Errorf("hop %d joins %s, want %s", i, hop.From, tt.wantJoins[i])
				}
			}
			if got := tt.chain.ownerPath(); got != tt.wantOwner {
				t.Errorf("owner path = %s, want %s", got, tt.wantOwner)
			}
			// every hop past the first addresses a field inside the
			// previous join
			for i := 1; i < len(tt.chain); i++ {
				prefix := tt.chain[i-1].As + "."
				if len(tt.chain[i].LocalField) <= len(prefix) || tt.chain[i].LocalField[:len(prefix)] != prefix {
					t.Errorf("hop %d local field %s not rooted in %s", i, tt.chain[i].LocalField, prefix)
				}
			}
		})
	}
}

func TestOwnerPipeline(t *testing.T) {
	id := primitive.NewObjectID()
	pipeline := EquipmentChain().Owner(id)

	// match, then lookup+unwind per hop, then the terminal projection
	wantStages := 1 + 3*2 + 1
	if len(pipeline) != wantStages {
		t.Fatalf("stage count = %d, want %d", len(pipeline), wantStages)
	}

	match, ok := pipeline[0][0].Value.(bson.M)
	if !ok || match["_id"] != id {
		t.Errorf("first stage does not match the resource id: %v", pipeline[0])
	}
	if pipeline[0][0].Key != "$match" {
		t.Errorf("first stage = %s, want $match", pipeline[0][0].Key)
	}

	last := pipeline[len(pipeline)-1]
	if last[0].Key != "$project" {
		t.Fatalf("last stage = %s, want $project", last[0].Key)
	}
	project := last[0].Value.(bson.M)
	if project["owner"] != "$client._id" {
		t.Errorf("owner projection = %v, want $client._id", project["owner"])
	}
}

func TestOwnerPipelineUnwindIsInnerJoin(t *testing.T) {
	pipeline := OfficeChain().Owner(primitive.NewObjectID())

	for _, stage := range pipeline {
		if stage[0].Key != "$unwind" {
			continue
		}
		// a bare path unwind drops documents with a broken reference,
		// which is what keeps dangling chains invisible
		if _, isPath := stage[0].Value.(string); !isPath {
			t.Errorf("unwind stage carries options, want bare path: %v", stage[0].Value)
		}
	}
}

func TestByUsersPipeline(t *testing.T) {
	owners := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	pipeline := SignatureChain().ByUsers(owners)

	// lookup+unwind per hop, then membership match, then id projection
	wantStages := 2*2 + 2
	if len(pipeline) != wantStages {
		t.Fatalf("stage count = %d, want %d", len(pipeline), wantStages)
	}

	match := pipeline[len(pipeline)-2]
	if match[0].Key != "$match" {
		t.Fatalf("second-to-last stage = %s, want $match", match[0].Key)
	}
	cond := match[0].Value.(bson.M)["client._id"].(bson.M)
	in := cond["$in"].([]primitive.ObjectID)
	if len(in) != len(owners) || in[0] != owners[0] || in[1] != owners[1] {
		t.Errorf("membership filter = %v, want %v", in, owners)
	}

	last := pipeline[len(pipeline)-1]
	project := last[0].Value.(bson.M)
	if len(project) != 1 || project["_id"] != 1 {
		t.Errorf("terminal projection = %v, want bare _id", project)
	}
}
