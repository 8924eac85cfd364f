package anilist

import "fmt"

const (
	mediaAnime = "ANIME"
	mediaManga = "MANGA"
)

const mediaFields = `
id
title {
	romaji
	english
	native
}
synonyms
description(asHtml: false)
coverImage {
	large
}
averageScore
format
status
countryOfOrigin
episodes
chapters
volumes
startDate {
	year
	month
	day
}
endDate {
	year
	month
	day
}`

const airingFields = `
airingSchedule(perPage: 50) {
	nodes {
		episode
		airingAt
	}
}`

// fields returns the media selection set for a media type.
func fields(mediaType string) string {
	if mediaType == mediaAnime {
		return mediaFields + airingFields
	}
	return mediaFields
}

func searchQuery(mediaType string) string {
	return fmt.Sprintf(`
query ($search: String, $page: Int, $perPage: Int) {
	Page (page: $page, perPage: $perPage) {
		pageInfo {
			hasNextPage
		}
		media (search: $search, type: %s) {
			%s
		}
	}
}`, mediaType, fields(mediaType))
}

func listQuery(mediaType string) string {
	return fmt.Sprintf(`
query ($userId: Int, $page: Int, $perPage: Int) {
	Page (page: $page, perPage: $perPage) {
		pageInfo {
			hasNextPage
		}
		mediaList (userId: $userId, type: %s) {
			status
			score(format: POINT_10)
			progress
			progressVolumes
			notes
			startedAt {
				year
				month
				day
			}
			completedAt {
				year
				month
				day
			}
			media {
				%s
			}
		}
	}
}`, mediaType, fields(mediaType))
}

func listEntryQuery(mediaType string) string {
	return fmt.Sprintf(`
query ($id: Int) {
	Media (id: $id, type: %s) {
		id
		mediaListEntry {
			id
		}
	}
}`, mediaType)
}

const saveMutation = `
mutation ($mediaId: Int, $status: MediaListStatus, $scoreRaw: Int, $progress: Int, $progressVolumes: Int, $notes: String, $startedAt: FuzzyDateInput, $completedAt: FuzzyDateInput) {
	SaveMediaListEntry (mediaId: $mediaId, status: $status, scoreRaw: $scoreRaw, progress: $progress, progressVolumes: $progressVolumes, notes: $notes, startedAt: $startedAt, completedAt: $completedAt) {
		id
		status
	}
}`

const deleteMutation = `
mutation ($id: Int) {
	DeleteMediaListEntry (id: $id) {
		deleted
	}
}`
