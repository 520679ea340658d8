package gatewayderive_test

import (
	"reflect"

	"github.com/gagliardetto/solana-go"
	"github.com/golang/mock/gomock"

	gd "github.com/civicteam/gateway-derive/internal/core/gatewayderive"
)

// MockGatewayProgramClient is a hand-written gomock-style mock of
// gd.GatewayProgramClient, used where a test needs to assert exactly which
// CPIs an entrypoint issues rather than observe their effect on a fixture
// Gateway program (internal/testing/gatewayderive.FakeGatewayProgram).
type MockGatewayProgramClient struct {
	ctrl     *gomock.Controller
	recorder *MockGatewayProgramClientMockRecorder
}

type MockGatewayProgramClientMockRecorder struct {
	mock *MockGatewayProgramClient
}

func NewMockGatewayProgramClient(ctrl *gomock.Controller) *MockGatewayProgramClient {
	mock := &MockGatewayProgramClient{ctrl: ctrl}
	mock.recorder = &MockGatewayProgramClientMockRecorder{mock}
	return mock
}

func (m *MockGatewayProgramClient) EXPECT() *MockGatewayProgramClientMockRecorder {
	return m.recorder
}

func (m *MockGatewayProgramClient) AddGatekeeper(payer, gatekeeper, gatekeeperNetwork solana.PublicKey) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddGatekeeper", payer, gatekeeper, gatekeeperNetwork)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockGatewayProgramClientMockRecorder) AddGatekeeper(payer, gatekeeper, gatekeeperNetwork interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddGatekeeper", reflect.TypeOf((*MockGatewayProgramClient)(nil).AddGatekeeper), payer, gatekeeper, gatekeeperNetwork)
}

func (m *MockGatewayProgramClient) AddFeatureToNetwork(gatekeeperNetwork, featureAccount solana.PublicKey) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddFeatureToNetwork", gatekeeperNetwork, featureAccount)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockGatewayProgramClientMockRecorder) AddFeatureToNetwork(gatekeeperNetwork, featureAccount interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddFeatureToNetwork", reflect.TypeOf((*MockGatewayProgramClient)(nil).AddFeatureToNetwork), gatekeeperNetwork, featureAccount)
}

func (m *MockGatewayProgramClient) IssueVanilla(params gd.IssueVanillaParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IssueVanilla", params)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockGatewayProgramClientMockRecorder) IssueVanilla(params interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IssueVanilla", reflect.TypeOf((*MockGatewayProgramClient)(nil).IssueVanilla), params)
}

func (m *MockGatewayProgramClient) UpdateExpiry(params gd.UpdateExpiryParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateExpiry", params)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockGatewayProgramClientMockRecorder) UpdateExpiry(params interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateExpiry", reflect.TypeOf((*MockGatewayProgramClient)(nil).UpdateExpiry), params)
}

var _ gd.GatewayProgramClient = (*MockGatewayProgramClient)(nil)
