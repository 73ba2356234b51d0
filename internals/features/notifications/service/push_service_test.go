package service

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifModel "kantorku_backend/internals/features/notifications/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&notifModel.NotificationModel{},
		&notifModel.PushSubscriptionModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// kunci subscription yang valid secara kriptografis, seperti yang
// dihasilkan PushManager.subscribe di browser
func browserKeys(t *testing.T) (p256dh, auth string) {
	t.Helper()
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("generate auth: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(priv.PublicKey().Bytes()),
		base64.RawURLEncoding.EncodeToString(raw)
}

func newPushServiceForTest(t *testing.T, db *gorm.DB) *PushService {
	t.Helper()
	priv, pub, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate vapid: %v", err)
	}
	svc := NewPushService(db, VAPIDConfig{
		PublicKey:  pub,
		PrivateKey: priv,
		Subscriber: "mailto:admin@kantorku.go.id",
	})
	svc.Client = &http.Client{}
	return svc
}

func seedSubscription(t *testing.T, db *gorm.DB, userID uuid.UUID, endpoint string) *notifModel.PushSubscriptionModel {
	t.Helper()
	p256dh, auth := browserKeys(t)
	sub := &notifModel.PushSubscriptionModel{
		SubscriptionUserID:   userID,
		SubscriptionEndpoint: endpoint,
		SubscriptionP256dh:   p256dh,
		SubscriptionAuth:     auth,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	return sub
}

func TestDispatchKirimDanPrune(t *testing.T) {
	db := newTestDB(t)
	svc := newPushServiceForTest(t, db)
	userID := uuid.New()

	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer okSrv.Close()
	goneSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer goneSrv.Close()

	alive := seedSubscription(t, db, userID, okSrv.URL+"/push/alive")
	dead := seedSubscription(t, db, userID, goneSrv.URL+"/push/dead")

	taskID := uuid.New()
	err := svc.Dispatch(context.Background(), PushPayload{
		UserID:    userID,
		Title:     "Disposisi baru",
		Message:   "Hadiri rapat koordinasi",
		TaskID:    &taskID,
		TaskTitle: "Hadiri rapat koordinasi",
		Type:      "disposisi",
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var notif notifModel.NotificationModel
	if err := db.First(&notif, "notification_user_id = ?", userID).Error; err != nil {
		t.Fatalf("notifikasi in-app tidak tersimpan: %v", err)
	}
	if notif.NotificationTitle != "Disposisi baru" || notif.NotificationIsRead {
		t.Errorf("notifikasi = %+v", notif)
	}

	var cnt int64
	db.Model(&notifModel.PushSubscriptionModel{}).
		Where("subscription_id = ?", dead.SubscriptionID).Count(&cnt)
	if cnt != 0 {
		t.Error("subscription 410 harus dipangkas")
	}
	db.Model(&notifModel.PushSubscriptionModel{}).
		Where("subscription_id = ?", alive.SubscriptionID).Count(&cnt)
	if cnt != 1 {
		t.Error("subscription sehat ikut terhapus")
	}
}

func TestDispatchTanpaVAPIDHanyaInApp(t *testing.T) {
	db := newTestDB(t)
	svc := NewPushService(db, VAPIDConfig{})
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("tidak boleh ada HTTP call saat VAPID kosong")
	}))
	defer srv.Close()
	seedSubscription(t, db, userID, srv.URL)

	if err := svc.Dispatch(context.Background(), PushPayload{
		UserID:  userID,
		Title:   "Disposisi baru",
		Message: "Cek segera",
		Type:    "disposisi",
	}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var notifCnt, subCnt int64
	db.Model(&notifModel.NotificationModel{}).Where("notification_user_id = ?", userID).Count(&notifCnt)
	db.Model(&notifModel.PushSubscriptionModel{}).Where("subscription_user_id = ?", userID).Count(&subCnt)
	if notifCnt != 1 {
		t.Errorf("notifikasi in-app = %d, mau 1", notifCnt)
	}
	if subCnt != 1 {
		t.Errorf("subscription = %d, mau 1", subCnt)
	}
}

func TestDispatchEndpointError(t *testing.T) {
	db := newTestDB(t)
	svc := newPushServiceForTest(t, db)
	userID := uuid.New()

	// 500 bukan alasan prune; subscription dipertahankan
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	sub := seedSubscription(t, db, userID, srv.URL)

	if err := svc.Dispatch(context.Background(), PushPayload{
		UserID:  userID,
		Title:   "Disposisi baru",
		Message: "Cek segera",
		Type:    "disposisi",
	}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var cnt int64
	db.Model(&notifModel.PushSubscriptionModel{}).
		Where("subscription_id = ?", sub.SubscriptionID).Count(&cnt)
	if cnt != 1 {
		t.Error("subscription terhapus padahal server hanya 500")
	}
}
