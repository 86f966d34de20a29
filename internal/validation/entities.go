package validation

import "shramsiddhi/internal/models"

func workerFrom(in map[string]interface{}) *models.Worker {
	w := &models.Worker{
		FullName:         text(in["fullName"]),
		Age:              integer(in["age"]),
		Gender:           text(in["gender"]),
		AadhaarNumber:    optionalText(in["aadhaarNumber"]),
		MobileNumber:     text(in["mobileNumber"]),
		Address:          text(in["address"]),
		City:             text(in["city"]),
		State:            text(in["state"]),
		Pincode:          text(in["pincode"]),
		District:         text(in["district"]),
		PrimarySkill:     text(in["skillType"]),
		Experience:       integer(in["experience"]),
		DailyWage:        number(in["dailyWage"]),
		Availability:     text(in["availability"]),
		AdditionalSkills: text(in["additionalSkills"]),
		PhotoURL:         text(in["photo"]),
		Status:           string(models.WorkerPending),
	}
	if loc := object(in["location"]); loc != nil {
		w.Latitude = optionalNumber(loc["latitude"])
		w.Longitude = optionalNumber(loc["longitude"])
	}
	return w
}

func clientRequestFrom(in map[string]interface{}) *models.ClientRequest {
	return &models.ClientRequest{
		ClientName:  text(in["clientName"]),
		ClientPhone: text(in["clientPhone"]),
		ClientEmail: text(in["clientEmail"]),
		ServiceType: text(in["serviceType"]),
		Location:    text(in["location"]),
		Description: text(in["description"]),
		Budget:      number(in["budget"]),
		Urgency:     text(in["urgency"]),
		Status:      models.ClientRequestPending,
	}
}

func contactFrom(in map[string]interface{}) *models.ContactMessage {
	return &models.ContactMessage{
		Name:    text(in["name"]),
		Email:   text(in["email"]),
		Phone:   text(in["phone"]),
		Message: text(in["message"]),
		Status:  models.ContactMessageNew,
	}
}

// franchiseFrom keeps the whole submission, unknown keys included, in ApplicationData.
func franchiseFrom(in map[string]interface{}) *models.FranchiseApplication {
	return &models.FranchiseApplication{
		FullName:           text(in["fullName"]),
		ApplicantType:      text(in["applicantType"]),
		MobileNumber:       text(in["mobileNumber"]),
		Email:              text(in["email"]),
		AadharNumber:       text(in["aadharNumber"]),
		Address:            text(in["address"]),
		District:           text(in["district"]),
		City:               text(in["city"]),
		CenterLocationType: text(in["centerLocationType"]),
		SpaceAvailable:     text(in["spaceAvailable"]),
		ComputerSystem:     boolean(in["computerSystem"]),
		InternetAvailable:  boolean(in["internetAvailable"]),
		Status:             models.FranchiseApplicationPending,
		ApplicationData:    models.JSONMap(in),
	}
}
