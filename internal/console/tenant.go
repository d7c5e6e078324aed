package console

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentdesk/internal/attachments"
	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/filex"
	"github.com/dmitrijs2005/rentdesk/internal/models"
)

const (
	msgFileTooLarge = "File size must be less than 5MB"
	msgFileType     = "Please upload a PDF, JPG or PNG file"
)

// Register collects the tenant registration form and books the chosen room.
func (a *App) Register(ctx context.Context) error {
	if !a.requireRole(ctx, models.RoleTenant) {
		return nil
	}
	user := a.session.User

	rooms, err := a.store.GetAvailableRooms(ctx)
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		a.println("No rooms available at the moment")
		return nil
	}
	a.println("Available rooms:")
	for _, r := range rooms {
		a.printf("  Room %s - Floor %d (%s, Rs %d/month)\n", r.RoomNumber, r.Floor, roomTypeLabel(r.RoomType), r.RoomType.MonthlyRent())
	}

	aadhar, err := a.ask("Aadhar number (12 digits)")
	if err != nil {
		return err
	}
	company, err := a.ask("Company name")
	if err != nil {
		return err
	}
	family, err := a.ask("Family members count (default 1)")
	if err != nil {
		return err
	}
	roomNumber, err := a.ask("Room number")
	if err != nil {
		return err
	}
	aadharFile, err := a.ask("Aadhar card file (optional, PDF/JPG/PNG up to 5MB)")
	if err != nil {
		return err
	}

	if aadhar == "" || company == "" || roomNumber == "" {
		a.println("Please fill all required fields")
		return nil
	}
	count := 1
	if family != "" {
		if count, err = strconv.Atoi(family); err != nil {
			count = 0
		}
	}
	if msg := check(registrationForm{AadharNumber: aadhar, FamilyMembersCount: count}); msg != "" {
		a.println(msg)
		return nil
	}

	var roomType models.RoomType
	for _, r := range rooms {
		if r.RoomNumber == roomNumber {
			roomType = r.RoomType
		}
	}
	if roomType == "" {
		a.println("Room " + roomNumber + " is not available")
		return nil
	}

	var cardURL string
	if aadharFile != "" {
		url, ok, err := a.upload(ctx, attachments.KindAadhar, aadharFile)
		if err != nil || !ok {
			return err
		}
		cardURL = url
	}

	reg := models.TenantRegistration{
		TenantID:           user.UID,
		TenantName:         user.Name,
		AadharNumber:       aadhar,
		AadharCardURL:      cardURL,
		Company:            company,
		FamilyMembersCount: count,
		RoomNumber:         roomNumber,
		RoomType:           roomType,
		Phone:              user.Phone,
	}
	err = a.store.RegisterTenant(ctx, reg)
	switch {
	case errors.Is(err, common.ErrAlreadyRegistered):
		a.println("You are already registered.")
		return nil
	case errors.Is(err, common.ErrRoomOccupied), errors.Is(err, common.ErrorNotFound):
		a.println("Room " + roomNumber + " is not available")
		return nil
	case errors.Is(err, common.ErrorValidation):
		a.println(err.Error())
		return nil
	case err != nil:
		return err
	}

	a.log.Info(ctx, "registration submitted", "tenant_id", user.UID, "room", roomNumber)
	a.println("Registration successful! Redirecting to dashboard...")
	return a.Dashboard(ctx)
}

// Dashboard shows the tenant's room, profile and payment history.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.requireRole(ctx, models.RoleTenant) {
		return nil
	}

	ov, err := a.store.TenantOverview(ctx, a.session.User.UID)
	if errors.Is(err, common.ErrorNotFound) {
		a.println("Registration not found. Please complete your registration first.")
		return nil
	}
	if err != nil {
		return err
	}

	reg := ov.Registration
	a.printf("Room %s (%s), joined %s\n", reg.RoomNumber, roomTypeLabel(reg.RoomType), reg.JoinedAt.Format("2006-01-02"))
	a.printf("Company: %s | Family members: %d | Aadhar: %s\n", reg.Company, reg.FamilyMembersCount, maskAadhar(reg.AadharNumber))
	a.printf("Monthly rent: Rs %d | %s: %s\n", ov.MonthlyRent, ov.Month, ov.CurrentMonthStatus)

	a.printPayments(ctx, ov.Payments, false)
	if ov.CurrentMonthStatus != models.PaymentPaid {
		a.println("Type 'pay' to upload this month's payment proof.")
	}
	return nil
}

// Pay uploads a payment screenshot and records this month's rent.
func (a *App) Pay(ctx context.Context) error {
	if !a.requireRole(ctx, models.RoleTenant) {
		return nil
	}
	uid := a.session.User.UID

	status, err := a.store.CurrentMonthStatus(ctx, uid)
	if err != nil {
		return err
	}
	if status == models.PaymentPaid {
		a.println("Payment for this month has already been submitted.")
		return nil
	}

	path, err := a.ask("Payment screenshot file (PDF/JPG/PNG up to 5MB)")
	if err != nil {
		return err
	}
	if path == "" {
		a.println("Please select a payment screenshot")
		return nil
	}
	url, ok, err := a.upload(ctx, attachments.KindPayment, path)
	if err != nil || !ok {
		return err
	}

	_, err = a.store.SubmitRentProof(ctx, uid, url)
	switch {
	case errors.Is(err, common.ErrAlreadyPaid):
		a.println("Payment for this month has already been submitted.")
		return nil
	case errors.Is(err, common.ErrorNotFound):
		a.println("Registration not found. Please complete your registration first.")
		return nil
	case err != nil:
		return err
	}

	a.println("Payment proof uploaded successfully!")
	return nil
}

// upload reads path and saves it as an attachment. ok is false when the
// user was shown a message instead.
func (a *App) upload(ctx context.Context, kind attachments.Kind, path string) (url string, ok bool, err error) {
	if !attachments.Allowed(path) {
		a.println(msgFileType)
		return "", false, nil
	}

	data, err := filex.ReadFileLimited(path, a.maxFileSize)
	if errors.Is(err, common.ErrFileTooLarge) {
		a.println(msgFileTooLarge)
		return "", false, nil
	}
	if err != nil {
		a.println("Cannot read file: " + err.Error())
		return "", false, nil
	}

	url, err = a.files.Save(ctx, kind, filepath.Base(path), data)
	if errors.Is(err, common.ErrFileTooLarge) {
		a.println(msgFileTooLarge)
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("save attachment: %w", err)
	}
	return url, true, nil
}

func roomTypeLabel(t models.RoomType) string {
	if t == models.RoomSingle {
		return "Single"
	}
	return "Double"
}

// maskAadhar keeps the last four digits.
func maskAadhar(n string) string {
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}
