package models

type CreateOfferDto struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	City         string      `json:"city"`
	PreviewImage string      `json:"previewImage"`
	IsPremium    bool        `json:"isPremium"`
	Type         HousingType `json:"type"`
	Rooms        int         `json:"rooms"`
	Guests       int         `json:"guests"`
	Price        int         `json:"price"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	AuthorID     string      `json:"authorId"`
}

func (d *CreateOfferDto) Validate() error {
	var errs ValidationErrors
	errs.checkLength("name", d.Name, 10, 100)
	errs.checkLength("description", d.Description, 20, 1024)
	if c, ok := ParseCity(d.City); ok {
		d.City = string(c)
	} else {
		errs.add("city", "invalid")
	}
	if d.PreviewImage == "" {
		errs.add("previewImage", "required")
	}
	if !d.Type.Valid() {
		errs.add("type", "invalid")
	}
	errs.checkRange("rooms", d.Rooms, 1, 8)
	errs.checkRange("guests", d.Guests, 1, 10)
	errs.checkRange("price", d.Price, 100, 100000)
	checkCoordinates(&errs, d.Latitude, d.Longitude)
	errs.checkID("authorId", d.AuthorID)
	return errs.Err()
}

// UpdateOfferDto carries a partial update: nil fields are left untouched.
type UpdateOfferDto struct {
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	City         *string      `json:"city,omitempty"`
	PreviewImage *string      `json:"previewImage,omitempty"`
	IsPremium    *bool        `json:"isPremium,omitempty"`
	Type         *HousingType `json:"type,omitempty"`
	Rooms        *int         `json:"rooms,omitempty"`
	Guests       *int         `json:"guests,omitempty"`
	Price        *int         `json:"price,omitempty"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
}

func (d *UpdateOfferDto) IsEmpty() bool {
	return d.Name == nil && d.Description == nil && d.City == nil && d.PreviewImage == nil &&
		d.IsPremium == nil && d.Type == nil && d.Rooms == nil && d.Guests == nil &&
		d.Price == nil && d.Latitude == nil && d.Longitude == nil
}

func (d *UpdateOfferDto) Validate() error {
	var errs ValidationErrors
	if d.Name != nil {
		errs.checkLength("name", *d.Name, 10, 100)
	}
	if d.Description != nil {
		errs.checkLength("description", *d.Description, 20, 1024)
	}
	if d.City != nil {
		if c, ok := ParseCity(*d.City); ok {
			s := string(c)
			d.City = &s
		} else {
			errs.add("city", "invalid")
		}
	}
	if d.PreviewImage != nil && *d.PreviewImage == "" {
		errs.add("previewImage", "required")
	}
	if d.Type != nil && !d.Type.Valid() {
		errs.add("type", "invalid")
	}
	if d.Rooms != nil {
		errs.checkRange("rooms", *d.Rooms, 1, 8)
	}
	if d.Guests != nil {
		errs.checkRange("guests", *d.Guests, 1, 10)
	}
	if d.Price != nil {
		errs.checkRange("price", *d.Price, 100, 100000)
	}
	if d.Latitude != nil && (*d.Latitude < -90 || *d.Latitude > 90) {
		errs.add("latitude", "outOfRange")
	}
	if d.Longitude != nil && (*d.Longitude < -180 || *d.Longitude > 180) {
		errs.add("longitude", "outOfRange")
	}
	return errs.Err()
}

func checkCoordinates(errs *ValidationErrors, lat, lon float64) {
	if lat < -90 || lat > 90 {
		errs.add("latitude", "outOfRange")
	}
	if lon < -180 || lon > 180 {
		errs.add("longitude", "outOfRange")
	}
}
