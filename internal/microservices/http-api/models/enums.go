package models

type MediaType string

const (
	MediaTypeBook    MediaType = "BOOK"
	MediaTypeMovie   MediaType = "MOVIE"
	MediaTypeShow    MediaType = "SHOW"
	MediaTypeManga   MediaType = "MANGA"
	MediaTypeComic   MediaType = "COMIC"
	MediaTypeArtist  MediaType = "ARTIST"
	MediaTypeAlbum   MediaType = "ALBUM"
	MediaTypeGame    MediaType = "GAME"
	MediaTypePodcast MediaType = "PODCAST"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeBook, MediaTypeMovie, MediaTypeShow, MediaTypeManga, MediaTypeComic,
		MediaTypeArtist, MediaTypeAlbum, MediaTypeGame, MediaTypePodcast:
		return true
	}
	return false
}

type CreatorRole string

const (
	CreatorRoleAuthor      CreatorRole = "AUTHOR"
	CreatorRoleDirector    CreatorRole = "DIRECTOR"
	CreatorRoleArtist      CreatorRole = "ARTIST"
	CreatorRoleActor       CreatorRole = "ACTOR"
	CreatorRoleMusician    CreatorRole = "MUSICIAN"
	CreatorRoleIllustrator CreatorRole = "ILLUSTRATOR"
	CreatorRoleWriter      CreatorRole = "WRITER"
	CreatorRoleProducer    CreatorRole = "PRODUCER"
	CreatorRoleOther       CreatorRole = "OTHER"
)

func (r CreatorRole) Valid() bool {
	switch r {
	case CreatorRoleAuthor, CreatorRoleDirector, CreatorRoleArtist, CreatorRoleActor, CreatorRoleMusician,
		CreatorRoleIllustrator, CreatorRoleWriter, CreatorRoleProducer, CreatorRoleOther:
		return true
	}
	return false
}

type TagKind string

const (
	TagKindGenre TagKind = "GENRE"
	TagKindMood  TagKind = "MOOD"
	TagKindTopic TagKind = "TOPIC"
	TagKindStyle TagKind = "STYLE"
)

func (k TagKind) Valid() bool {
	switch k {
	case TagKindGenre, TagKindMood, TagKindTopic, TagKindStyle:
		return true
	}
	return false
}

type LinkType string

const (
	LinkTypeVibe      LinkType = "VIBE"
	LinkTypeTheme     LinkType = "THEME"
	LinkTypeTone      LinkType = "TONE"
	LinkTypeGenre     LinkType = "GENRE"
	LinkTypeAesthetic LinkType = "AESTHETIC"
	LinkTypeOther     LinkType = "OTHER"
)

func (t LinkType) Valid() bool {
	switch t {
	case LinkTypeVibe, LinkTypeTheme, LinkTypeTone, LinkTypeGenre, LinkTypeAesthetic, LinkTypeOther:
		return true
	}
	return false
}

type ActivityKind string

const (
	ActivityRate ActivityKind = "RATE"
	ActivityLink ActivityKind = "LINK"
	ActivityAdd  ActivityKind = "ADD"
	ActivityEdit ActivityKind = "EDIT"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityRate, ActivityLink, ActivityAdd, ActivityEdit:
		return true
	}
	return false
}
