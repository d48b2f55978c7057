package store

import "mediadesk/internal/catalog"

// Seed loads a small production-shaped dataset into every namespace so the
// dashboard has something to browse out of the box.
func Seed(s *Store) error {
	seeds := map[string][]map[string]any{
		catalog.ResourceArticles: {
			{"title": "Remote production field report", "slug": "remote-production-field-report",
				"excerpt": "Lessons from a three-camera remote shoot over bonded cellular.",
				"body":    "<p>Bonded cellular held up better than expected...</p>", "category": "field", "status": "published"},
			{"title": "Choosing a playout server", "slug": "choosing-a-playout-server",
				"excerpt": "What to look for when the channel count grows.",
				"body":    "<p>Channel density, codec support, redundancy...</p>", "category": "engineering", "status": "published"},
			{"title": "Studio B lighting refresh", "slug": "studio-b-lighting-refresh",
				"excerpt": "Draft notes on the LED retrofit.",
				"body":    "<p>The tungsten rig is due for replacement...</p>", "category": "facilities"},
		},
		catalog.ResourceEquipment: {
			{"name": "ARRI Alexa Mini LF", "category": "camera", "dailyRate": 950.0, "available": true, "status": "published"},
			{"name": "Sony FX9", "category": "camera", "dailyRate": 420.0, "available": true, "status": "published"},
			{"name": "Canon CN-E 50mm T1.3", "category": "lens", "dailyRate": 85.0, "available": false, "status": "published"},
			{"name": "Sennheiser MKH 416", "category": "audio", "dailyRate": 45.0, "available": true, "status": "published"},
			{"name": "Aputure LS 600d Pro", "category": "lighting", "dailyRate": 110.0, "available": true},
		},
		catalog.ResourceFacilities: {
			{"name": "Studio A", "kind": "soundstage", "areaSqm": 640, "cycRamp": true, "status": "published"},
			{"name": "Studio B", "kind": "soundstage", "areaSqm": 280, "cycRamp": false, "status": "published"},
			{"name": "Color Suite 1", "kind": "post", "areaSqm": 40, "status": "published"},
		},
		catalog.ResourceBroadcastUnits: {
			{"name": "OB Van 12", "cameras": 12, "uplink": "KA-band", "status": "published"},
			{"name": "Flypack Alpha", "cameras": 6, "uplink": "bonded-cellular", "status": "published"},
		},
		catalog.ResourceServices: {
			{"name": "Live event coverage", "summary": "Multi-camera live production with uplink.", "status": "published"},
			{"name": "Equipment rental", "summary": "Camera, lens, audio and lighting packages.", "status": "published"},
			{"name": "Post production", "summary": "Edit, grade and finishing.", "status": "published"},
		},
		catalog.ResourceSolutions: {
			{"name": "Corporate streaming", "summary": "Turnkey town-hall streaming package.", "status": "published"},
			{"name": "Sports OB", "summary": "Outside broadcast for stadium events.", "status": "draft"},
		},
		catalog.ResourceStaff: {
			{"name": "J. Okafor", "role": "Director of Photography", "status": "published"},
			{"name": "M. Lindqvist", "role": "Technical Director", "status": "published"},
			{"name": "A. Reyes", "role": "Audio Supervisor", "status": "published"},
		},
		catalog.ResourceSettings: {
			{"key": "site", "companyName": "MediaDesk Productions", "contactEmail": "hello@mediadesk.example",
				"defaultLocale": "en", "status": "published"},
		},
	}

	for _, ns := range catalog.Resources() {
		for _, payload := range seeds[ns] {
			if _, err := s.Create(ns, payload); err != nil {
				return err
			}
		}
	}
	return nil
}
