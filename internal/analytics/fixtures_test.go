package analytics

import "github.com/TobiSchelling/PartyPulse/internal/dataset"

func rec(id, username, displayName, group string, likes, virality int64, createdAt string) dataset.RawRecord {
	return dataset.RawRecord{
		ID:            id,
		URL:           "https://x.com/" + username + "/status/" + id,
		Username:      username,
		DisplayName:   displayName,
		Group:         group,
		Label:         displayName,
		Text:          "tweet " + id,
		CreatedAt:     createdAt,
		Likes:         likes,
		Retweets:      likes / 2,
		Replies:       likes / 4,
		ViralityScore: virality,
	}
}

func sampleRecords() []dataset.RawRecord {
	return []dataset.RawRecord{
		rec("1", "AyOdeh", "Ayman Odeh", "Hadash-Ta'al", 100, 150, "Thu Apr 29 17:09:14 +0000 2021"),
		rec("2", "mnsorabbas", "Mansour Abbas", "Ra'am", 40, 60, "Fri Apr 30 08:00:00 +0000 2021"),
		rec("3", "ayodeh", "Ayman Odeh", "Hadash-Ta'al", 51, 70, "Sat May 01 09:30:00 +0000 2021"),
		rec("4", "RaedSalah", "Sheikh Raed Salah", "Islamic/Independent", 7, 9, "2021-05-02T12:00:00Z"),
		rec("5", "HaneenZoabi", "Haneen Zoabi", "Activist", 300, 420, "2021-05-03T12:00:00Z"),
		rec("6", "AidaTuma", "", "Hadash-Ta'al", 10, 12, "2021-05-04T12:00:00Z"),
	}
}

func sampleTopics() []dataset.TopicNarrativeRecord {
	return []dataset.TopicNarrativeRecord{
		{
			Username:    "ayodeh",
			DisplayName: "Ayman Odeh",
			Group:       "Hadash-Ta'al",
			TopTopics:   []string{"Economy", "Housing", "Civil rights"},
			Narratives:  []string{"Equality matters", "Housing crisis"},
		},
		{
			Username:    "aidatuma",
			DisplayName: "Aida Touma-Sliman",
			Group:       "Hadash-Ta'al",
			TopTopics:   []string{"economy ", "Women's rights", "Housing"},
			Narratives:  []string{"Equality matters", "equality matters"},
		},
		{
			Username:    "mnsorabbas",
			DisplayName: "Mansour Abbas",
			Group:       "Ra'am",
			TopTopics:   []string{"Coalition politics"},
			Narratives:  []string{"Pragmatism"},
		},
	}
}
